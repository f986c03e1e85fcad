package storage

import "github.com/arpitsinghofficial/videos-service/internal/types"

type Storage interface {
	CreateUser(email, password string) (string, error)
	GetUserByEmail(email string) (string, string, error)
	CreateVideo(userID, title, description string) (types.Video, error)
	GetVideo(videoID string) (types.Video, error)
	ListVideosByUser(userID string) ([]types.Video, error)
	ListVideoIDs() ([]string, error)
	UpdateVideo(video types.Video) error
}
