// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisRateLimiter is a fixed-window limiter shared by every API instance using the same Redis.
type RedisRateLimiter struct {
	client         redis.UniversalClient
	maxAttempts    int
	windowDuration time.Duration
}

// NewRedisRateLimiter creates a limiter storing counters in client.
func NewRedisRateLimiter(client redis.UniversalClient, maxAttempts int, windowDuration time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:         client,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RedisRateLimiter) Middleware() gin.HandlerFunc {
	return RateLimit(rl)
}

// Allow implements Limiter. The first hit of a window starts its expiry.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := redisKeyPrefix + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.windowDuration).Err(); err != nil {
			return false, fmt.Errorf("failed to start rate limit window: %w", err)
		}
	}

	return count <= int64(rl.maxAttempts), nil
}

// NewRedisClient parses url and verifies the server answers.
func NewRedisClient(ctx context.Context, url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
