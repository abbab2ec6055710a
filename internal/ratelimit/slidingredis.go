package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter is a sliding-window counter backed by Redis sorted sets. It guards
// login attempts and document exports.
type Limiter struct {
	Client redis.UniversalClient
	Prefix string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Allow registers an event for key and reports whether it is within limit
// events per window. A nil client or non-positive limit allows everything.
func (l Limiter) Allow(ctx context.Context, key string, window time.Duration, limit int) (allowed bool, remaining int, reset time.Time, err error) {
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	until := now.Add(window)
	if l.Client == nil || limit <= 0 || window <= 0 {
		return true, limit, until, nil
	}

	redisKey := l.Prefix + key
	member := fmt.Sprintf("%d:%s", now.UnixNano(), uuid.NewString())
	cutoff := now.Add(-window).UnixNano()

	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", fmt.Sprintf("(%d", cutoff))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err = pipe.Exec(ctx); err != nil {
		return false, 0, until, fmt.Errorf("ratelimit: %w", err)
	}

	current := int(countCmd.Val())
	remaining = max(limit-current, 0)
	return current <= limit, remaining, until, nil
}
