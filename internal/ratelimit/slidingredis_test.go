package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestLimiterAllowSlidingWindow(t *testing.T) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	limiter := Limiter{Client: newTestClient(t), Prefix: "test:", Now: func() time.Time { return now }}
	ctx := context.Background()
	window := 2 * time.Second

	for i := 0; i < 2; i++ {
		allowed, remaining, _, err := limiter.Allow(ctx, "key", window, 2)
		require.NoError(t, err)
		require.True(t, allowed, "request %d", i)
		require.Equal(t, 2-(i+1), remaining)
		now = now.Add(500 * time.Millisecond)
	}

	allowed, remaining, _, err := limiter.Allow(ctx, "key", window, 2)
	require.NoError(t, err)
	require.False(t, allowed)
	require.Zero(t, remaining)

	allowed, _, _, err = limiter.Allow(ctx, "other", window, 2)
	require.NoError(t, err)
	require.True(t, allowed, "keys are independent")

	now = now.Add(window)
	allowed, _, _, err = limiter.Allow(ctx, "key", window, 2)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestLimiterWithoutClientAllows(t *testing.T) {
	allowed, remaining, _, err := Limiter{}.Allow(context.Background(), "key", time.Second, 5)
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 5, remaining)
}
