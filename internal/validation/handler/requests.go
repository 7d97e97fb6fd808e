package handler

import (
	"strings"

	"panguard/internal/validation"
	dErrors "panguard/pkg/domain-errors"
)

// maxRawNumberLength bounds the raw submitted number, which may still
// contain separators. The longest issued card number is 19 digits; anything
// past this bound cannot be one.
const maxRawNumberLength = 64

// ValidateCardRequest is the HTTP request body for POST /cards/validate.
//
// An empty or unrecognized number is NOT a request error: it flows through
// to the engine and comes back as a reasoned invalid result. Only the
// scheme field and gross size violations are rejected up front.
type ValidateCardRequest struct {
	Scheme string `json:"scheme"`
	Number string `json:"number"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ValidateCardRequest) Validate() error {
	r.Scheme = strings.TrimSpace(r.Scheme)
	if r.Scheme == "" {
		return dErrors.New(dErrors.CodeValidation, "scheme is required")
	}
	if len(r.Number) > maxRawNumberLength {
		return dErrors.Newf(dErrors.CodeValidation, "number must be at most %d characters", maxRawNumberLength)
	}
	return nil
}

// ValidateBatchRequest is the HTTP request body for POST /cards/validate/batch.
// The batch size cap is enforced by the service, not here, so oversized
// submissions are rejected and audited regardless of transport.
type ValidateBatchRequest struct {
	Cards []BatchCard `json:"cards"`
}

// BatchCard is one entry in a batch submission.
type BatchCard struct {
	Scheme string `json:"scheme"`
	Number string `json:"number"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ValidateBatchRequest) Validate() error {
	if len(r.Cards) == 0 {
		return dErrors.New(dErrors.CodeValidation, "cards must contain at least one entry")
	}
	for i := range r.Cards {
		r.Cards[i].Scheme = strings.TrimSpace(r.Cards[i].Scheme)
		if r.Cards[i].Scheme == "" {
			return dErrors.Newf(dErrors.CodeValidation, "cards[%d].scheme is required", i)
		}
		if len(r.Cards[i].Number) > maxRawNumberLength {
			return dErrors.Newf(dErrors.CodeValidation, "cards[%d].number must be at most %d characters", i, maxRawNumberLength)
		}
	}
	return nil
}

// Items converts the request entries to domain batch items.
func (r *ValidateBatchRequest) Items() []validation.BatchItem {
	items := make([]validation.BatchItem, len(r.Cards))
	for i, c := range r.Cards {
		items[i] = validation.BatchItem{Scheme: c.Scheme, Number: c.Number}
	}
	return items
}
