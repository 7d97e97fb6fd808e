package ratelimit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// extraAttempts bounds the exhaustion loop past the advertised limit, in case
// other traffic consumed part of the window first.
const extraAttempts = 10

// TestContext interface defines the methods needed from the main test context.
type TestContext interface {
	POST(path string, body any) error
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
}

// RegisterSteps registers rate limiting step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^the response should include rate limit headers$`, steps.responseIncludesRateLimitHeaders)
	ctx.Step(`^I send validation requests until the limiter rejects one$`, steps.sendUntilRejected)
	ctx.Step(`^the response should include a positive "([^"]*)" header$`, steps.responseIncludesPositiveHeader)
}

type ratelimitSteps struct {
	tc TestContext
}

func (s *ratelimitSteps) responseIncludesRateLimitHeaders(ctx context.Context) error {
	for _, name := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if s.tc.GetLastResponseHeader(name) == "" {
			return fmt.Errorf("expected header %q on the response", name)
		}
	}
	return nil
}

// sendUntilRejected reads the advertised window size from the first response
// and keeps submitting until the limiter answers 429.
func (s *ratelimitSteps) sendUntilRejected(ctx context.Context) error {
	body := map[string]string{"scheme": "visa", "number": "4111111111111111"}

	if err := s.tc.POST("/v1/cards/validate", body); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() == 429 {
		return nil
	}

	rawLimit := s.tc.GetLastResponseHeader("X-RateLimit-Limit")
	if rawLimit == "" {
		return fmt.Errorf("no X-RateLimit-Limit header, rate limiting appears disabled")
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		return fmt.Errorf("parse X-RateLimit-Limit %q: %w", rawLimit, err)
	}

	for range limit + extraAttempts {
		if err := s.tc.POST("/v1/cards/validate", body); err != nil {
			return err
		}
		if s.tc.GetLastResponseStatus() == 429 {
			return nil
		}
	}
	return fmt.Errorf("limiter never rejected within %d requests over the advertised limit", extraAttempts)
}

func (s *ratelimitSteps) responseIncludesPositiveHeader(ctx context.Context, name string) error {
	raw := s.tc.GetLastResponseHeader(name)
	if raw == "" {
		return fmt.Errorf("expected header %q on the response", name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parse header %q value %q: %w", name, raw, err)
	}
	if value <= 0 {
		return fmt.Errorf("expected header %q to be positive, got %d", name, value)
	}
	return nil
}
