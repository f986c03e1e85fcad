package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/arpitsinghofficial/videos-service/internal/storage"
	"github.com/arpitsinghofficial/videos-service/internal/types"
)

// VideoCache wraps storage with Redis caching for video record reads
type VideoCache struct {
	storage storage.Storage
	redis   *redis.Client
}

// NewVideoCache creates a new video cache
func NewVideoCache(storage storage.Storage, redisClient *redis.Client) *VideoCache {
	return &VideoCache{
		storage: storage,
		redis:   redisClient,
	}
}

// Cache key patterns
const (
	VideoKey = "video:%s" // video:videoID
)

// Cache durations
const (
	VideoCacheDuration = 2 * time.Minute // Video records change rarely
)

// GetVideo returns a cached video record or fetches from the database
func (c *VideoCache) GetVideo(ctx context.Context, videoID string) (types.Video, error) {
	key := fmt.Sprintf(VideoKey, videoID)

	// Try cache first
	cached, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var video types.Video
		if err := json.Unmarshal([]byte(cached), &video); err == nil {
			return video, nil
		}
	}

	// Cache miss - fetch from database
	video, err := c.storage.GetVideo(videoID)
	if err != nil {
		return types.Video{}, err
	}

	// Cache the result
	data, _ := json.Marshal(video)
	c.redis.Set(ctx, key, data, VideoCacheDuration)

	return video, nil
}

// InvalidateVideo drops the cached record after an update, e.g. when a
// thumbnail is attached
func (c *VideoCache) InvalidateVideo(ctx context.Context, videoID string) {
	key := fmt.Sprintf(VideoKey, videoID)
	c.redis.Del(ctx, key)
}
