package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 10
	testWindow = time.Minute
)

type MemoryLimiterSuite struct {
	suite.Suite
	limiter *MemoryLimiter
	ctx     context.Context
}

func TestMemoryLimiterSuite(t *testing.T) {
	suite.Run(t, new(MemoryLimiterSuite))
}

func (s *MemoryLimiterSuite) SetupTest() {
	s.limiter = NewMemoryLimiter()
	s.ctx = context.Background()
}

func (s *MemoryLimiterSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.limiter.Allow(s.ctx, "ip:first", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
		s.Zero(result.RetryAfter)
	})

	s.Run("requests up to limit allowed", func() {
		var result *Result
		var err error
		for range testLimit {
			result, err = s.limiter.Allow(s.ctx, "ip:limit", testLimit, testWindow)
		}
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(0, result.Remaining)
	})

	s.Run("request over limit denied", func() {
		for range testLimit {
			_, err := s.limiter.Allow(s.ctx, "ip:over", testLimit, testWindow)
			require.NoError(s.T(), err)
		}
		result, err := s.limiter.Allow(s.ctx, "ip:over", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
		s.GreaterOrEqual(result.RetryAfter, 1)
		s.LessOrEqual(result.RetryAfter, int(testWindow.Seconds()))
		s.True(result.ResetAt.After(time.Now()))
	})

	s.Run("after window expires requests allowed", func() {
		_, err := s.limiter.Allow(s.ctx, "ip:expire", testLimit, testWindow)
		s.Require().NoError(err)

		s.limiter.mu.Lock()
		if sw := s.limiter.windows["ip:expire"]; sw != nil {
			sw.timestamps = []time.Time{}
		}
		s.limiter.mu.Unlock()

		result, err := s.limiter.Allow(s.ctx, "ip:expire", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit-1, result.Remaining)
	})
}

func (s *MemoryLimiterSuite) TestKeysAreIndependent() {
	for range testLimit {
		_, err := s.limiter.Allow(s.ctx, "ip:203.0.113.7", testLimit, testWindow)
		s.Require().NoError(err)
	}

	blocked, err := s.limiter.Allow(s.ctx, "ip:203.0.113.7", testLimit, testWindow)
	s.Require().NoError(err)
	s.False(blocked.Allowed)

	other, err := s.limiter.Allow(s.ctx, "ip:198.51.100.9", testLimit, testWindow)
	s.Require().NoError(err)
	s.True(other.Allowed)
}

func (s *MemoryLimiterSuite) TestReset() {
	for range testLimit {
		_, err := s.limiter.Allow(s.ctx, "ip:reset", testLimit, testWindow)
		s.Require().NoError(err)
	}

	err := s.limiter.Reset(s.ctx, "ip:reset")
	s.Require().NoError(err)

	result, err := s.limiter.Allow(s.ctx, "ip:reset", testLimit, testWindow)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit-1, result.Remaining)
}

func (s *MemoryLimiterSuite) TestConcurrentChecksNeverExceedLimit() {
	const attempts = 50

	var wg sync.WaitGroup
	var allowed atomic.Int64
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.limiter.Allow(s.ctx, "ip:concurrent", testLimit, testWindow)
			require.NoError(s.T(), err)
			if result.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int64(testLimit), allowed.Load())
}
