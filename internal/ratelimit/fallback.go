package ratelimit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"panguard/pkg/platform/sentinel"
)

// How often an open circuit lets a request probe the primary store.
const probeInterval = 5 * time.Second

// FallbackLimiter serves rate limit checks from a primary store and
// switches to a local fallback while the primary is unavailable:
//   - Consecutive sentinel.ErrUnavailable errors open a circuit; while
//     it is open, checks go to the fallback and results are marked
//     Degraded. Other errors, caller cancellation included, propagate
//     without counting against the circuit.
//   - An open circuit still probes the primary at most once per
//     probeInterval, and closes again after enough probes succeed.
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	breaker  *circuitBreaker
	logger   *slog.Logger

	mu        sync.Mutex
	lastProbe time.Time
}

// NewFallbackLimiter wraps primary with a local fallback, typically a
// RedisLimiter backed by a MemoryLimiter.
func NewFallbackLimiter(primary, fallback Limiter, logger *slog.Logger) *FallbackLimiter {
	return &FallbackLimiter{
		primary:  primary,
		fallback: fallback,
		breaker:  newCircuitBreaker(),
		logger:   logger,
	}
}

// Allow checks the primary store, falling back to the local limiter when
// the circuit is open or the primary reports itself unavailable.
func (l *FallbackLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if l.breaker.isOpen() && !l.shouldProbe() {
		return l.allowDegraded(ctx, key, limit, window)
	}

	result, err := l.primary.Allow(ctx, key, limit, window)
	if err != nil {
		if !errors.Is(err, sentinel.ErrUnavailable) {
			return nil, err
		}
		if l.breaker.recordFailure() {
			l.logger.WarnContext(ctx, "rate limit store unavailable, switching to in-memory fallback", "error", err)
		}
		return l.allowDegraded(ctx, key, limit, window)
	}

	if l.breaker.recordSuccess() {
		l.logger.InfoContext(ctx, "rate limit store recovered")
	}
	return result, nil
}

func (l *FallbackLimiter) allowDegraded(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	result, err := l.fallback.Allow(ctx, key, limit, window)
	if err != nil {
		return nil, err
	}
	result.Degraded = true
	return result, nil
}

// shouldProbe rations primary attempts while the circuit is open.
func (l *FallbackLimiter) shouldProbe() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.lastProbe) < probeInterval {
		return false
	}
	l.lastProbe = time.Now()
	return true
}

// circuitBreaker tracks consecutive primary store errors. It opens after
// failureThreshold consecutive failures and closes again after
// successThreshold consecutive successes.
type circuitBreaker struct {
	mu               sync.Mutex
	state            circuitState
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
}

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
)

func newCircuitBreaker() *circuitBreaker {
	return &circuitBreaker{
		state:            circuitClosed,
		failureThreshold: 5,
		successThreshold: 3,
	}
}

func (c *circuitBreaker) isOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == circuitOpen
}

// recordFailure counts a primary error and reports whether this failure
// opened the circuit.
func (c *circuitBreaker) recordFailure() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successCount = 0
	if c.state == circuitOpen {
		return false
	}
	c.failureCount++
	if c.failureCount >= c.failureThreshold {
		c.state = circuitOpen
		return true
	}
	return false
}

// recordSuccess counts a primary success and reports whether this success
// closed the circuit.
func (c *circuitBreaker) recordSuccess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == circuitOpen {
		c.successCount++
		if c.successCount >= c.successThreshold {
			c.state = circuitClosed
			c.failureCount = 0
			c.successCount = 0
			return true
		}
		return false
	}
	c.failureCount = 0
	return false
}
