package thumbnails

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/arpitsinghofficial/videos-service/internal/assets"
	"github.com/arpitsinghofficial/videos-service/internal/blobstore"
	"github.com/arpitsinghofficial/videos-service/internal/cache"
	"github.com/arpitsinghofficial/videos-service/internal/events"
	"github.com/arpitsinghofficial/videos-service/internal/http/middleware"
	"github.com/arpitsinghofficial/videos-service/internal/storage"
	"github.com/arpitsinghofficial/videos-service/internal/utils/response"
)

// formOverhead is extra room on top of the upload cap for multipart
// boundaries and headers when bounding the request body.
const formOverhead = 10 << 10

// Handlers serves thumbnail upload and retrieval for video records.
type Handlers struct {
	storage        storage.Storage
	videoCache     *cache.VideoCache
	blobs          blobstore.Store
	publisher      events.Publisher
	maxUploadBytes int64
}

// NewHandlers creates a new thumbnail handlers instance
func NewHandlers(storage storage.Storage, videoCache *cache.VideoCache, blobs blobstore.Store, publisher events.Publisher, maxUploadBytes int64) *Handlers {
	return &Handlers{
		storage:        storage,
		videoCache:     videoCache,
		blobs:          blobs,
		publisher:      publisher,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload attaches a thumbnail to a video the caller owns
// @Summary Upload a video thumbnail
// @Description Attach a thumbnail image to a video owned by the caller
// @Tags thumbnails
// @Accept multipart/form-data
// @Produce json
// @Param videoId path string true "Video ID"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 200 {object} types.Video "Updated video record"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 403 {object} response.Response "Not the video owner"
// @Failure 404 {object} response.Response "Video not found"
// @Failure 413 {object} response.Response "Thumbnail too large"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /api/thumbnails/{videoId} [post]
func (h *Handlers) Upload() http.HandlerFunc {
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

		// Extract user ID from context
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		// Ownership is checked before any of the size-bounded body is
		// consumed. It must gate the persistence side effect in any case.
		video, err := h.storage.GetVideo(videoID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("video not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		if video.UserID != userID {
			response.WriteJSON(w, http.StatusForbidden, response.GeneralError(errors.New("you do not own this video")))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverhead)
		if err := r.ParseMultipartForm(h.maxUploadBytes + formOverhead); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				response.WriteJSON(w, http.StatusRequestEntityTooLarge, response.GeneralError(errors.New("thumbnail is too large")))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("unable to parse form")))
			return
		}

		file, header, err := r.FormFile("thumbnail")
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("thumbnail file is required")))
			return
		}
		defer file.Close()

		if header.Size > h.maxUploadBytes {
			response.WriteJSON(w, http.StatusRequestEntityTooLarge, response.GeneralError(errors.New("thumbnail is too large")))
			return
		}

		mediaType := header.Header.Get("Content-Type")
		if _, err := assets.ExtensionForMediaType(mediaType); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errors.New("unable to read thumbnail file")))
			return
		}

		thumbnailURL, err := h.blobs.Persist(r.Context(), videoID, blobstore.Blob{
			Data:      data,
			MediaType: mediaType,
		})
		if err != nil {
			slog.Error("Failed to persist thumbnail",
				slog.String("video_id", videoID),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to store thumbnail")))
			return
		}

		video.ThumbnailURL = thumbnailURL
		if err := h.storage.UpdateVideo(video); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to update video record")))
			return
		}
		h.videoCache.InvalidateVideo(r.Context(), videoID)

		if err := h.publisher.PublishThumbnailUpdated(videoID, userID, thumbnailURL); err != nil {
			slog.Error("Failed to publish thumbnail event", slog.String("error", err.Error()))
		}

		slog.Info("Thumbnail attached",
			slog.String("video_id", videoID),
			slog.String("user_id", userID))

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Thumbnail uploaded successfully", video))
	}
}

// Get serves thumbnail bytes held by the process. Only registered when the
// active storage strategy keeps bytes in memory; every other strategy's
// references resolve without the service.
// @Summary Get a video thumbnail
// @Tags thumbnails
// @Produce image/*
// @Param videoId path string true "Video ID"
// @Success 200 {file} binary "Thumbnail bytes"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 404 {object} response.Response "Video or thumbnail not found"
// @Router /api/thumbnails/{videoId} [get]
func (h *Handlers) Get(retriever blobstore.Retriever) http.HandlerFunc {
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

		// The video record is checked first; a missing record and a
		// missing blob are distinct failures.
		if _, err := h.videoCache.GetVideo(r.Context(), videoID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("video not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		blob, err := retriever.Retrieve(r.Context(), videoID)
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("thumbnail not found")))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		// The bytes live only in this process; clients must not treat
		// them as re-derivable from a stable store.
		w.Header().Set("Content-Type", blob.MediaType)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(blob.Data)
	}
}
