package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(t *testing.T, maxRequests int, window time.Duration) *RedisLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client, Config{
		MaxRequests: maxRequests,
		Window:      window,
		KeyPrefix:   "ratelimit:test",
	})
}

func TestCheckCountsEveryCallWithinWindow(t *testing.T) {
	limiter := testLimiter(t, 5, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		result, err := limiter.Check(ctx, "user1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, i, result.Total, "total equals the call's position in the window")
		assert.Equal(t, 5-i, result.Remaining)
		assert.True(t, result.ResetAt.After(time.Now()))
	}
}

func TestCheckDeniesOverLimitButStillCounts(t *testing.T) {
	limiter := testLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Check(ctx, "user1")
		require.NoError(t, err)
	}

	result, err := limiter.Check(ctx, "user1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, 4, result.Total, "the denied request is itself recorded")
}

func TestCheckWindowSlides(t *testing.T) {
	limiter := testLimiter(t, 2, 80*time.Millisecond)
	ctx := context.Background()

	_, err := limiter.Check(ctx, "user1")
	require.NoError(t, err)
	_, err = limiter.Check(ctx, "user1")
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	result, err := limiter.Check(ctx, "user1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Total, "entries older than the window are pruned")
}

func TestCheckIdentifiersAreIndependent(t *testing.T) {
	limiter := testLimiter(t, 10, time.Minute)
	ctx := context.Background()

	var last Result
	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, "user1")
		require.NoError(t, err)
		last = result
	}
	assert.Equal(t, 3, last.Total)

	result, err := limiter.Check(ctx, "user2")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total, "user2 is unaffected by user1's calls")
}

func TestResetClearsWindow(t *testing.T) {
	limiter := testLimiter(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Check(ctx, "user1")
		require.NoError(t, err)
	}

	require.NoError(t, limiter.Reset(ctx, "user1"))

	result, err := limiter.Check(ctx, "user1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Total)
}

func TestConsumeFailsWithRetryAfterWhenDenied(t *testing.T) {
	limiter := testLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, err := limiter.Consume(ctx, "user1")
	require.NoError(t, err)

	result, err := limiter.Consume(ctx, "user1")
	require.Error(t, err)
	var limitErr *Error
	require.ErrorAs(t, err, &limitErr)
	assert.Greater(t, limitErr.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, limitErr.RetryAfter, time.Minute)
	assert.False(t, result.Allowed)
}

func TestGuardInvokesHandlerOnlyWhenAdmitted(t *testing.T) {
	limiter := testLimiter(t, 1, time.Minute)
	ctx := context.Background()

	invocations := 0
	handler := Guard(limiter, "steam", func(ctx context.Context) (string, error) {
		invocations++
		return "quote", nil
	})

	value, err := handler(ctx)
	require.NoError(t, err)
	assert.Equal(t, "quote", value)

	_, err = handler(ctx)
	require.Error(t, err)
	var limitErr *Error
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 1, invocations, "a denied request never reaches the handler")
}
