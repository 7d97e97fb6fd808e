package e2e

import (
	"github.com/cucumber/godog"

	"panguard/e2e/steps/common"
	"panguard/e2e/steps/ratelimit"
	"panguard/e2e/steps/validation"
)

// RegisterSteps registers all step definitions from modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background, generic requests, and response assertions.
	common.RegisterSteps(ctx, tc)

	// Card and batch validation plus the scheme catalog.
	validation.RegisterSteps(ctx, tc)

	// Rate limit headers and exhaustion.
	ratelimit.RegisterSteps(ctx, tc)
}
