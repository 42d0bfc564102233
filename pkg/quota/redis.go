package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTracker implements Tracker with one Redis counter per provider per
// period. Each counter expires at its period boundary, so a counter that is
// never touched in a period disappears on its own instead of needing a sweep.
type RedisTracker struct {
	redis *redis.Client
}

// NewRedisTracker creates a new RedisTracker.
func NewRedisTracker(redis *redis.Client) *RedisTracker {
	return &RedisTracker{redis: redis}
}

func dailyKey(provider string, now time.Time) string {
	return fmt.Sprintf("quota:%s:daily:%s", provider, now.UTC().Format("2006-01-02"))
}

func monthlyKey(provider string, now time.Time) string {
	return fmt.Sprintf("quota:%s:monthly:%s", provider, now.UTC().Format("2006-01"))
}

// TrackUsage implements Tracker.TrackUsage. The increment-and-expire per
// counter is atomic per key; daily and monthly counters are independent keys
// and never share state with the rate limiter's windows.
func (t *RedisTracker) TrackUsage(ctx context.Context, provider string, config Config) (Status, error) {
	now := time.Now()

	dailyUsed, err := t.increment(ctx, dailyKey(provider, now), nextDay(now))
	if err != nil {
		return Status{}, fmt.Errorf("track daily usage for %q: %w", provider, err)
	}

	status := Status{
		Daily: PeriodStatus{
			Used:      dailyUsed,
			Limit:     config.DailyQuota,
			Remaining: remaining(config.DailyQuota, dailyUsed),
			ResetAt:   nextDay(now),
		},
	}

	if config.MonthlyQuota > 0 {
		monthlyUsed, err := t.increment(ctx, monthlyKey(provider, now), nextMonth(now))
		if err != nil {
			return Status{}, fmt.Errorf("track monthly usage for %q: %w", provider, err)
		}
		status.Monthly = &PeriodStatus{
			Used:      monthlyUsed,
			Limit:     config.MonthlyQuota,
			Remaining: remaining(config.MonthlyQuota, monthlyUsed),
			ResetAt:   nextMonth(now),
		}
	}

	return status, nil
}

// GetStatus implements Tracker.GetStatus. A counter key that does not exist
// yet reads as zero usage; ResetAt is still the forward-looking boundary.
func (t *RedisTracker) GetStatus(ctx context.Context, provider string, config Config) (Status, error) {
	now := time.Now()

	dailyUsed, err := t.read(ctx, dailyKey(provider, now))
	if err != nil {
		return Status{}, fmt.Errorf("read daily usage for %q: %w", provider, err)
	}

	status := Status{
		Daily: PeriodStatus{
			Used:      dailyUsed,
			Limit:     config.DailyQuota,
			Remaining: remaining(config.DailyQuota, dailyUsed),
			ResetAt:   nextDay(now),
		},
	}

	if config.MonthlyQuota > 0 {
		monthlyUsed, err := t.read(ctx, monthlyKey(provider, now))
		if err != nil {
			return Status{}, fmt.Errorf("read monthly usage for %q: %w", provider, err)
		}
		status.Monthly = &PeriodStatus{
			Used:      monthlyUsed,
			Limit:     config.MonthlyQuota,
			Remaining: remaining(config.MonthlyQuota, monthlyUsed),
			ResetAt:   nextMonth(now),
		}
	}

	return status, nil
}

// increment bumps the counter and, when the key is new, schedules it to
// expire at the period boundary.
func (t *RedisTracker) increment(ctx context.Context, key string, expireAt time.Time) (int64, error) {
	value, err := t.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr: %w", err)
	}

	if value == 1 {
		if err := t.redis.ExpireAt(ctx, key, expireAt).Err(); err != nil {
			return 0, fmt.Errorf("expire at: %w", err)
		}
	}

	return value, nil
}

func (t *RedisTracker) read(ctx context.Context, key string) (int64, error) {
	value, err := t.redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get: %w", err)
	}
	return value, nil
}
