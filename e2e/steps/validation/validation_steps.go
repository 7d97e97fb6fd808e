package validation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context.
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetLastResponseBody() []byte
}

// RegisterSteps registers card validation and scheme catalog step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &validationSteps{tc: tc}

	ctx.Step(`^I validate the card number "([^"]*)" as scheme "([^"]*)"$`, steps.validateCard)
	ctx.Step(`^I validate the batch:$`, steps.validateBatch)
	ctx.Step(`^I request the scheme catalog$`, steps.requestSchemeCatalog)
	ctx.Step(`^I request the scheme "([^"]*)"$`, steps.requestScheme)
	ctx.Step(`^the scheme "([^"]*)" should be in the catalog$`, steps.schemeShouldBeInCatalog)
	ctx.Step(`^result (\d+) should have reason "([^"]*)"$`, steps.resultShouldHaveReason)
}

type validationSteps struct {
	tc TestContext
}

func (s *validationSteps) validateCard(ctx context.Context, number, scheme string) error {
	return s.tc.POST("/v1/cards/validate", map[string]string{
		"scheme": scheme,
		"number": number,
	})
}

func (s *validationSteps) validateBatch(ctx context.Context, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("batch table needs a header row plus at least one card")
	}

	cards := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 2 {
			return fmt.Errorf("batch rows must have scheme and number columns")
		}
		cards = append(cards, map[string]string{
			"scheme": row.Cells[0].Value,
			"number": row.Cells[1].Value,
		})
	}

	return s.tc.POST("/v1/cards/validate/batch", map[string]any{"cards": cards})
}

func (s *validationSteps) requestSchemeCatalog(ctx context.Context) error {
	return s.tc.GET("/v1/schemes", nil)
}

func (s *validationSteps) requestScheme(ctx context.Context, code string) error {
	return s.tc.GET("/v1/schemes/"+code, nil)
}

func (s *validationSteps) schemeShouldBeInCatalog(ctx context.Context, code string) error {
	var payload struct {
		Schemes []struct {
			Code string `json:"code"`
		} `json:"schemes"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &payload); err != nil {
		return fmt.Errorf("unmarshal catalog: %w", err)
	}

	for _, scheme := range payload.Schemes {
		if scheme.Code == code {
			return nil
		}
	}
	return fmt.Errorf("scheme %q not present in catalog of %d schemes", code, len(payload.Schemes))
}

func (s *validationSteps) resultShouldHaveReason(ctx context.Context, index int, reason string) error {
	var payload struct {
		Results []struct {
			Reason string `json:"reason"`
		} `json:"results"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &payload); err != nil {
		return fmt.Errorf("unmarshal batch response: %w", err)
	}

	if index >= len(payload.Results) {
		return fmt.Errorf("result %d out of range, batch returned %d results", index, len(payload.Results))
	}
	if got := payload.Results[index].Reason; got != reason {
		return fmt.Errorf("expected result %d reason %q, got %q", index, reason, got)
	}
	return nil
}
