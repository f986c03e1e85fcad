package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/arpitsinghofficial/videos-service/internal/types"
)

// fakeStorage counts GetVideo calls so cache hits are observable
type fakeStorage struct {
	videos map[string]types.Video
	reads  int
}

func (f *fakeStorage) CreateUser(email, password string) (string, error) { return "", nil }
func (f *fakeStorage) GetUserByEmail(email string) (string, string, error) {
	return "", "", sql.ErrNoRows
}
func (f *fakeStorage) CreateVideo(userID, title, description string) (types.Video, error) {
	return types.Video{}, nil
}
func (f *fakeStorage) GetVideo(videoID string) (types.Video, error) {
	f.reads++
	video, ok := f.videos[videoID]
	if !ok {
		return types.Video{}, sql.ErrNoRows
	}
	return video, nil
}
func (f *fakeStorage) ListVideosByUser(userID string) ([]types.Video, error) { return nil, nil }
func (f *fakeStorage) ListVideoIDs() ([]string, error)                       { return nil, nil }
func (f *fakeStorage) UpdateVideo(video types.Video) error {
	f.videos[video.ID] = video
	return nil
}

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
		DB:   0,
	})

	cleanup := func() {
		redisClient.Close()
		mr.Close()
	}

	return redisClient, cleanup
}

func TestVideoCacheReadThrough(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	storage := &fakeStorage{videos: map[string]types.Video{
		"v1": {ID: "v1", UserID: "u1", Title: "first"},
	}}
	cache := NewVideoCache(storage, redisClient)

	ctx := context.Background()

	video, err := cache.GetVideo(ctx, "v1")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if video.Title != "first" {
		t.Errorf("unexpected video: %+v", video)
	}

	// Second read should be served from cache
	if _, err := cache.GetVideo(ctx, "v1"); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if storage.reads != 1 {
		t.Errorf("expected 1 storage read, got %d", storage.reads)
	}
}

func TestVideoCacheInvalidation(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	storage := &fakeStorage{videos: map[string]types.Video{
		"v1": {ID: "v1", UserID: "u1", Title: "first"},
	}}
	cache := NewVideoCache(storage, redisClient)

	ctx := context.Background()

	if _, err := cache.GetVideo(ctx, "v1"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	updated := types.Video{ID: "v1", UserID: "u1", Title: "first", ThumbnailURL: "http://localhost/assets/v1.png"}
	if err := storage.UpdateVideo(updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	cache.InvalidateVideo(ctx, "v1")

	video, err := cache.GetVideo(ctx, "v1")
	if err != nil {
		t.Fatalf("read after invalidate: %v", err)
	}
	if video.ThumbnailURL != updated.ThumbnailURL {
		t.Errorf("stale record served after invalidation: %+v", video)
	}
}
