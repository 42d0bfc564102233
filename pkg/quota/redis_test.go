package quota

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTracker(t *testing.T) (*RedisTracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisTracker(client), mr
}

func TestTrackUsageIncrementsDailyCounter(t *testing.T) {
	tracker, _ := testTracker(t)
	ctx := context.Background()
	config := Config{DailyQuota: 100}

	var status Status
	var err error
	for i := 0; i < 3; i++ {
		status, err = tracker.TrackUsage(ctx, "steam", config)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 3, status.Daily.Used)
	assert.EqualValues(t, 100, status.Daily.Limit)
	assert.EqualValues(t, 97, status.Daily.Remaining)
	assert.Nil(t, status.Monthly, "monthly is absent when not configured")
}

func TestTrackUsageIncrementsMonthlyWhenConfigured(t *testing.T) {
	tracker, _ := testTracker(t)
	ctx := context.Background()
	config := Config{DailyQuota: 10, MonthlyQuota: 1000}

	status, err := tracker.TrackUsage(ctx, "steam", config)
	require.NoError(t, err)

	require.NotNil(t, status.Monthly)
	assert.EqualValues(t, 1, status.Monthly.Used)
	assert.EqualValues(t, 999, status.Monthly.Remaining)
	assert.EqualValues(t, 1, status.Daily.Used, "daily and monthly increment in the same call")
}

func TestGetStatusDoesNotIncrement(t *testing.T) {
	tracker, _ := testTracker(t)
	ctx := context.Background()
	config := Config{DailyQuota: 10, MonthlyQuota: 100}

	_, err := tracker.TrackUsage(ctx, "buff", config)
	require.NoError(t, err)
	_, err = tracker.TrackUsage(ctx, "buff", config)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		status, err := tracker.GetStatus(ctx, "buff", config)
		require.NoError(t, err)
		assert.EqualValues(t, 2, status.Daily.Used)
		assert.EqualValues(t, 2, status.Monthly.Used)
	}
}

func TestGetStatusForUntouchedProviderReadsZero(t *testing.T) {
	tracker, _ := testTracker(t)
	ctx := context.Background()

	status, err := tracker.GetStatus(ctx, "steam", Config{DailyQuota: 50})
	require.NoError(t, err)

	assert.EqualValues(t, 0, status.Daily.Used)
	assert.EqualValues(t, 50, status.Daily.Remaining)
	assert.True(t, status.Daily.ResetAt.After(time.Now()), "reset time is forward-looking even before the counter exists")
}

func TestRemainingClampsAtZero(t *testing.T) {
	tracker, _ := testTracker(t)
	ctx := context.Background()
	config := Config{DailyQuota: 2}

	var status Status
	var err error
	for i := 0; i < 4; i++ {
		status, err = tracker.TrackUsage(ctx, "steam", config)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 4, status.Daily.Used)
	assert.EqualValues(t, 0, status.Daily.Remaining)
}

func TestProvidersHaveIndependentCounters(t *testing.T) {
	tracker, _ := testTracker(t)
	ctx := context.Background()
	config := Config{DailyQuota: 10}

	_, err := tracker.TrackUsage(ctx, "steam", config)
	require.NoError(t, err)

	status, err := tracker.TrackUsage(ctx, "buff", config)
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.Daily.Used)
}

func TestCounterKeysExpireAtPeriodBoundary(t *testing.T) {
	tracker, mr := testTracker(t)
	ctx := context.Background()

	_, err := tracker.TrackUsage(ctx, "steam", Config{DailyQuota: 10, MonthlyQuota: 100})
	require.NoError(t, err)

	now := time.Now().UTC()
	dKey := dailyKey("steam", now)
	mKey := monthlyKey("steam", now)
	require.True(t, mr.Exists(dKey))
	require.True(t, mr.Exists(mKey))

	assert.InDelta(t, time.Until(nextDay(now)).Seconds(), mr.TTL(dKey).Seconds(), 2)
	assert.InDelta(t, time.Until(nextMonth(now)).Seconds(), mr.TTL(mKey).Seconds(), 2)
}

func TestPeriodBoundaries(t *testing.T) {
	at := time.Date(2026, time.August, 29, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC), nextDay(at))
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), nextMonth(at))

	endOfYear := time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), nextDay(endOfYear))
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), nextMonth(endOfYear))
}
