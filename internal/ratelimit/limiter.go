// Package ratelimit provides sliding window request limiting keyed by
// client IP, with an in-memory store for single-instance deployments and
// a Redis store for distributed ones.
package ratelimit

import (
	"context"
	"math"
	"time"
)

// Limiter checks whether a request identified by key is within its limit
// and records it when it is.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// Result represents the outcome of a rate limit check.
type Result struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when denied
	Degraded   bool      `json:"degraded,omitempty"`    // served by the in-memory fallback
}

// retryAfterSeconds converts the wait until resetAt into whole seconds,
// rounded up so clients never retry before capacity frees.
func retryAfterSeconds(now, resetAt time.Time) int {
	secs := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
