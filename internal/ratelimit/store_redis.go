package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"panguard/pkg/platform/sentinel"
)

// Redis key prefix for rate limit windows
const limiterKeyPrefix = "panguard:ratelimit:"

// RedisLimiter implements Limiter on a Redis sorted set per key, so the
// sliding window is shared across every instance pointed at the same
// Redis. This is the recommended store for multi-instance deployments.
type RedisLimiter struct {
	client *redis.Client
}

// NewRedisLimiter constructs a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

// Allow records the request under key if capacity remains in the window.
//
// The entry is added optimistically inside a transactional pipeline and
// removed again when the count comes back over the limit, so concurrent
// checks from different instances cannot both sneak under the wire.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	redisKey := limiterKeyPrefix + key
	member := uuid.NewString()
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	countCmd := pipe.ZCard(ctx, redisKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, unavailable("rate limit window update", err)
	}

	count := int(countCmd.Val())
	resetAt := now.Add(window)
	if entries := oldestCmd.Val(); len(entries) > 0 {
		resetAt = time.Unix(0, int64(entries[0].Score)).Add(window)
	}

	if count > limit {
		if err := l.client.ZRem(ctx, redisKey, member).Err(); err != nil {
			return nil, unavailable("rate limit rollback", err)
		}
		return &Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfterSeconds(now, resetAt),
		}, nil
	}

	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the recorded requests for a key.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, limiterKeyPrefix+key).Err()
}

// unavailable tags a Redis failure so the fallback limiter can tell a
// backend outage apart from caller cancellation, which passes through
// unchanged.
func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
