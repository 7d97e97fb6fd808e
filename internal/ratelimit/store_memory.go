package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter implements Limiter with an in-process sliding window.
// Counts are per instance and lost on restart; use RedisLimiter when
// several instances must share a budget.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
}

// slidingWindow tracks request timestamps so bursts at a window boundary
// cannot double the effective limit.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// NewMemoryLimiter creates an empty in-memory limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*slidingWindow),
	}
}

// Allow records the request under key if capacity remains in the window.
func (l *MemoryLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sw := l.getOrCreateWindow(key, window)
	now := time.Now()
	sw.cleanup(now)

	if len(sw.timestamps) < limit {
		sw.timestamps = append(sw.timestamps, now)
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - len(sw.timestamps),
			ResetAt:   sw.timestamps[0].Add(window),
		}, nil
	}

	resetAt := now.Add(window)
	if len(sw.timestamps) > 0 {
		// Capacity frees when the oldest recorded request ages out.
		resetAt = sw.timestamps[0].Add(window)
	}

	return &Result{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retryAfterSeconds(now, resetAt),
	}, nil
}

// Reset clears the recorded requests for a key.
func (l *MemoryLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
	return nil
}

// cleanup removes timestamps that have aged out of the window.
func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// getOrCreateWindow returns the window for key, creating it on first use.
// Must be called while holding l.mu.
func (l *MemoryLimiter) getOrCreateWindow(key string, window time.Duration) *slidingWindow {
	if sw := l.windows[key]; sw != nil {
		return sw
	}
	sw := &slidingWindow{timestamps: []time.Time{}, window: window}
	l.windows[key] = sw
	return sw
}
