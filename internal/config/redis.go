package config

// This file defines a Redis client constructor for the application.
// Redis is used only to rate limit login attempts; it never caches
// upstream catalog responses. If connection fails during startup the
// function returns nil and callers degrade gracefully by disabling
// rate limiting.

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from the loaded Config.
// It returns nil when no address is configured or the server cannot be
// reached within a short timeout.
func NewRedisClient(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
