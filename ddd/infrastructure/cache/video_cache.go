package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"video-edit-service/internal/resource"
	"video-edit-service/pkg/logger"
)

const videoListKey = "video-edit:videos:list"

// VideoListCache caches the serialized video listing. A miss or any
// Redis error degrades to the database path; cache trouble is never a
// request failure.
type VideoListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVideoListCache(redisResource *resource.RedisResource, ttl time.Duration) *VideoListCache {
	return &VideoListCache{client: redisResource.Client(), ttl: ttl}
}

// GetList returns the cached listing payload, or ok=false on miss.
func (c *VideoListCache) GetList(ctx context.Context) ([]byte, bool) {
	data, err := c.client.Get(ctx, videoListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Video list cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, false
	}
	return data, true
}

// SetList stores the listing payload for the configured TTL.
func (c *VideoListCache) SetList(ctx context.Context, data []byte) {
	if err := c.client.Set(ctx, videoListKey, data, c.ttl).Err(); err != nil {
		logger.Warn("Video list cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Invalidate drops the cached listing. Called after every write that
// changes what the listing would show.
func (c *VideoListCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, videoListKey).Err(); err != nil {
		logger.Warn("Video list cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
