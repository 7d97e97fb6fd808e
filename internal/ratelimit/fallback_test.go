package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panguard/pkg/platform/sentinel"
)

// failingLimiter always errors, standing in for an unreachable store.
type failingLimiter struct {
	calls int
}

func (f *failingLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	f.calls++
	return nil, fmt.Errorf("dial 127.0.0.1:6379: %w", sentinel.ErrUnavailable)
}

// canceledLimiter mimics a store call aborted by the caller going away.
type canceledLimiter struct{}

func (canceledLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	return nil, fmt.Errorf("rate limit window update: %w", context.Canceled)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFallbackLimiter_UsesPrimaryWhenHealthy(t *testing.T) {
	primary := NewMemoryLimiter()
	fallback := NewMemoryLimiter()
	limiter := NewFallbackLimiter(primary, fallback, discardLogger())

	result, err := limiter.Allow(context.Background(), "ip:healthy", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.False(t, result.Degraded)

	// The fallback store must stay untouched.
	fb, err := fallback.Allow(context.Background(), "ip:healthy", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 4, fb.Remaining)
}

func TestFallbackLimiter_ServesFallbackOnPrimaryError(t *testing.T) {
	primary := &failingLimiter{}
	limiter := NewFallbackLimiter(primary, NewMemoryLimiter(), discardLogger())

	result, err := limiter.Allow(context.Background(), "ip:degraded", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.True(t, result.Degraded)
	assert.Equal(t, 4, result.Remaining)
}

func TestFallbackLimiter_OpenCircuitStopsHammeringPrimary(t *testing.T) {
	primary := &failingLimiter{}
	limiter := NewFallbackLimiter(primary, NewMemoryLimiter(), discardLogger())
	// Pretend a probe just ran so the open circuit cannot probe again.
	limiter.lastProbe = time.Now()

	for i := 0; i < 20; i++ {
		result, err := limiter.Allow(context.Background(), "ip:open", 100, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Degraded)
	}

	// Five consecutive failures open the circuit; later checks skip the
	// primary entirely until the probe interval elapses.
	assert.Equal(t, 5, primary.calls)
}

func TestFallbackLimiter_CancellationBypassesCircuit(t *testing.T) {
	limiter := NewFallbackLimiter(canceledLimiter{}, NewMemoryLimiter(), discardLogger())

	for i := 0; i < 10; i++ {
		_, err := limiter.Allow(context.Background(), "ip:canceled", 5, time.Minute)
		require.ErrorIs(t, err, context.Canceled)
	}

	// Aborted callers say nothing about store health.
	assert.False(t, limiter.breaker.isOpen())
	assert.Equal(t, 0, limiter.breaker.failureCount)
}

func TestFallbackLimiter_FallbackStillEnforcesLimit(t *testing.T) {
	limiter := NewFallbackLimiter(&failingLimiter{}, NewMemoryLimiter(), discardLogger())

	ctx := context.Background()
	for range 3 {
		result, err := limiter.Allow(ctx, "ip:enforced", 3, time.Minute)
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}

	result, err := limiter.Allow(ctx, "ip:enforced", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.True(t, result.Degraded)
	assert.GreaterOrEqual(t, result.RetryAfter, 1)
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	cb := newCircuitBreaker()

	t.Run("opens after consecutive failures", func(t *testing.T) {
		for i := 0; i < cb.failureThreshold-1; i++ {
			assert.False(t, cb.recordFailure())
			assert.False(t, cb.isOpen())
		}
		assert.True(t, cb.recordFailure())
		assert.True(t, cb.isOpen())
	})

	t.Run("stays open until enough successes", func(t *testing.T) {
		for i := 0; i < cb.successThreshold-1; i++ {
			assert.False(t, cb.recordSuccess())
			assert.True(t, cb.isOpen())
		}
		assert.True(t, cb.recordSuccess())
		assert.False(t, cb.isOpen())
	})

	t.Run("success resets the failure count while closed", func(t *testing.T) {
		cb.recordFailure()
		cb.recordFailure()
		cb.recordSuccess()
		for i := 0; i < cb.failureThreshold-1; i++ {
			assert.False(t, cb.recordFailure())
		}
		assert.True(t, cb.recordFailure())
	})

	t.Run("failure while open resets success progress", func(t *testing.T) {
		require.True(t, cb.isOpen())
		cb.recordSuccess()
		cb.recordSuccess()
		cb.recordFailure()
		for i := 0; i < cb.successThreshold-1; i++ {
			assert.False(t, cb.recordSuccess())
		}
		assert.True(t, cb.recordSuccess())
	})
}
