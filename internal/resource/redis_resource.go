package resource

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/redis/go-redis/v9"

	"video-edit-service/pkg/config"
	"video-edit-service/pkg/logger"
)

// RedisResource manages the lifecycle of the shared Redis client.
type RedisResource struct {
	client *redis.Client
}

// NewRedisResource establishes the Redis connection and verifies it
// with a ping.
func NewRedisResource(ctx context.Context, cfg config.RedisConfig) (*RedisResource, error) {
	opts := &redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if cfg.EnableTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("Redis resource initialized", map[string]interface{}{
		"addr": opts.Addr,
		"db":   cfg.DB,
	})
	return &RedisResource{client: client}, nil
}

// Client exposes the raw go-redis client.
func (r *RedisResource) Client() *redis.Client {
	return r.client
}

// Close tidy ups the underlying Redis client.
func (r *RedisResource) Close() {
	_ = r.client.Close()
}
