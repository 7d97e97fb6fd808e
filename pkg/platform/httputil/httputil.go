// Package httputil centralizes JSON encoding and error translation for the
// HTTP layer so handlers stay free of envelope boilerplate.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "panguard/pkg/domain-errors"
)

// WriteJSON encodes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard JSON error envelope.
// Internal errors omit the description so implementation details never leak
// to clients; all other codes include the message as error_description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)

	body := map[string]string{
		"error": string(code),
	}
	if code != dErrors.CodeInternal && code != dErrors.CodeInvariantViolation {
		if domainErr, ok := dErrors.AsError(err); ok {
			body["error_description"] = domainErr.Message
		}
	}

	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

// Validatable is implemented by request types that parse and validate their
// own fields. Validate is called once, immediately after decoding, and may
// populate derived fields on the request.
type Validatable interface {
	Validate() error
}

// DecodeAndPrepare decodes the request body into T and runs its validation.
// On failure it writes the error response and returns ok=false; handlers
// just return. T's pointer type must implement Validatable.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "invalid request body",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return req, false
	}

	validatable, ok := any(&req).(Validatable)
	if !ok {
		WriteError(w, dErrors.New(dErrors.CodeInternal, "request type is not validatable"))
		return req, false
	}

	if err := validatable.Validate(); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "request validation failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		WriteError(w, err)
		return req, false
	}

	return req, true
}
