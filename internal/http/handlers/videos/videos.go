package videos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/arpitsinghofficial/videos-service/internal/cache"
	"github.com/arpitsinghofficial/videos-service/internal/http/middleware"
	"github.com/arpitsinghofficial/videos-service/internal/storage"
	"github.com/arpitsinghofficial/videos-service/internal/types"
	"github.com/arpitsinghofficial/videos-service/internal/utils/response"
)

// CreateVideo handles creating a new video record
// @Summary Create a new video record
// @Description Create a new video metadata record owned by the caller
// @Tags videos
// @Accept json
// @Produce json
// @Param video body types.VideoCreateRequest true "Video details"
// @Success 201 {object} types.Video "Video created successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /api/videos [post]
func CreateVideo(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extract user ID from context
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		var req types.VideoCreateRequest

		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("request body cannot be empty")))
			return
		} else if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Validate request
		validate := validator.New()
		err = validate.Struct(req)
		if err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		video, err := storage.CreateVideo(userID, req.Title, req.Description)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		slog.Info("Video created with ID:", slog.String("video_id", video.ID))

		response.WriteJSON(w, http.StatusCreated, response.RequestOK("Video created successfully", video))
	}
}

// ListVideos handles listing the caller's videos
// @Summary List own videos
// @Tags videos
// @Produce json
// @Success 200 {array} types.Video "Videos fetched successfully"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /api/videos [get]
func ListVideos(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extract user ID from context
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		videos, err := storage.ListVideosByUser(userID)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Videos fetched successfully", videos))
	}
}

// GetVideo handles fetching a single video record
// @Summary Get a video record
// @Tags videos
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} types.Video "Video fetched successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 404 {object} response.Response "Video not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /api/videos/{videoId} [get]
func GetVideo(videoCache *cache.VideoCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := r.PathValue("videoId")
		if videoID == "" {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("video ID is required")))
			return
		}
		if _, err := uuid.Parse(videoID); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("invalid video ID")))
			return
		}

		video, err := videoCache.GetVideo(r.Context(), videoID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("video not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Video fetched successfully", video))
	}
}
