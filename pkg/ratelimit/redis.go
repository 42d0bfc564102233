package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements Limiter using a Redis sorted set per identifier as
// a sliding window log. All four sub-steps of a check (prune, insert, count,
// expire) run in one pipeline, so concurrent callers across processes never
// observe a torn read.
type RedisLimiter struct {
	redis  *redis.Client
	config Config
}

// NewRedisLimiter creates a new RedisLimiter.
func NewRedisLimiter(redis *redis.Client, config Config) *RedisLimiter {
	return &RedisLimiter{
		redis:  redis,
		config: config,
	}
}

// formatKey namespaces the identifier with the configured prefix.
func (l *RedisLimiter) formatKey(identifier string) string {
	return fmt.Sprintf("%s:%s", l.config.KeyPrefix, identifier)
}

// Check implements Limiter.Check using a sliding window algorithm.
//
// The current attempt is inserted before counting, so the request that tips
// the window over the limit is itself recorded even though it is denied.
// Denied requests counting against the window keeps retry storms from
// inflating admitted throughput.
func (l *RedisLimiter) Check(ctx context.Context, identifier string) (Result, error) {
	now := time.Now()
	nowMs := now.UnixMilli()
	windowKey := l.formatKey(identifier)
	windowStart := nowMs - l.config.Window.Milliseconds()

	pipe := l.redis.Pipeline()

	// Remove old entries outside the window
	pipe.ZRemRangeByScore(ctx, windowKey, "0", strconv.FormatInt(windowStart, 10))

	// Add current request. The random suffix keeps two calls landing in the
	// same millisecond from collapsing into one member.
	pipe.ZAdd(ctx, windowKey, redis.Z{
		Score:  float64(nowMs),
		Member: fmt.Sprintf("%d-%s", nowMs, uuid.NewString()),
	})

	// Count entries including this one
	countCmd := pipe.ZCard(ctx, windowKey)

	// Set expiry so abandoned keys self-clean
	pipe.Expire(ctx, windowKey, l.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit check for %q: %w", windowKey, err)
	}

	total := int(countCmd.Val())
	remaining := l.config.MaxRequests - total
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   total <= l.config.MaxRequests,
		Remaining: remaining,
		ResetAt:   now.Add(l.config.Window),
		Total:     total,
	}, nil
}

// Consume implements Limiter.Consume.
func (l *RedisLimiter) Consume(ctx context.Context, identifier string) (Result, error) {
	result, err := l.Check(ctx, identifier)
	if err != nil {
		return Result{}, err
	}
	if !result.Allowed {
		retryAfter := time.Until(result.ResetAt)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return result, &Error{RetryAfter: retryAfter}
	}
	return result, nil
}

// Reset implements Limiter.Reset.
func (l *RedisLimiter) Reset(ctx context.Context, identifier string) error {
	return l.redis.Del(ctx, l.formatKey(identifier)).Err()
}
