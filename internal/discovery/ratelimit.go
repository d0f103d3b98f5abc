// internal/discovery/ratelimit.go

package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter bounds how many swipes a user may record per window.
type RateLimiter interface {
	Allow(ctx context.Context, userID int64) (bool, error)
}

// NoopLimiter allows everything. Used when Redis is not configured and in
// tests that are not about rate limiting.
type NoopLimiter struct{}

func (NoopLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	return true, nil
}

// RedisLimiter is a fixed-window counter keyed per user. The window starts
// on the first swipe and the counter expires with it.
type RedisLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: int64(max), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	key := fmt.Sprintf("swipes:%d", userID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= l.max, nil
}
