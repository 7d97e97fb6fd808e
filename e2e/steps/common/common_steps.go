package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context.
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetLastResponseHeader(name string) string
}

// RegisterSteps registers background and generic response assertion steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the service is running$`, steps.serviceIsRunning)
	ctx.Step(`^the response status should be (\d+)$`, steps.responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.responseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, steps.responseFieldShouldBeBool)
	ctx.Step(`^the response should include header "([^"]*)"$`, steps.responseShouldIncludeHeader)
	ctx.Step(`^the response should not contain "([^"]*)"$`, steps.responseShouldNotContain)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serviceIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/healthz", nil); err != nil {
		return fmt.Errorf("service not reachable: %w", err)
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("service not healthy: /healthz returned %d: %s", status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) responseStatusShouldBe(ctx context.Context, expected int) error {
	if status := s.tc.GetLastResponseStatus(); status != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) responseFieldShouldBe(ctx context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprintf("%v", value); got != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *commonSteps) responseFieldShouldBeBool(ctx context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	got, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected field %q to be a boolean, got %T", field, value)
	}
	want, err := strconv.ParseBool(expected)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected field %q to be %v, got %v", field, want, got)
	}
	return nil
}

func (s *commonSteps) responseShouldIncludeHeader(ctx context.Context, name string) error {
	if s.tc.GetLastResponseHeader(name) == "" {
		return fmt.Errorf("expected header %q on the response", name)
	}
	return nil
}

func (s *commonSteps) responseShouldNotContain(ctx context.Context, needle string) error {
	if strings.Contains(string(s.tc.GetLastResponseBody()), needle) {
		return fmt.Errorf("response must not contain %q", needle)
	}
	return nil
}
