// Package errors provides domain errors with stable machine-readable codes.
//
// Services and handlers create errors with New/Newf at the point of failure
// and branch on codes with HasCode. The HTTP layer translates codes to status
// codes and JSON envelopes via ToHTTPStatus; raw messages for internal errors
// never reach clients.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error code. Codes are part of the API
// contract: clients and tests match on them, so values never change.
type Code string

const (
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeUnauthorized       Code = "unauthorized"
	CodeNotFound           Code = "not_found"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a domain error carrying a code and a human-readable message.
// The message may be shown to clients for non-internal codes.
type Error struct {
	Code    Code
	Message string
	wrapped error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error that preserves the underlying cause for
// errors.Is/errors.As chains while presenting a clean message.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, wrapped: err}
}

// AsError extracts the domain error from an error chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// GetCode returns the code carried by err, or CodeInternal when err is not a
// domain error. Unknown failures are deliberately opaque to clients.
func GetCode(err error) Code {
	if domainErr, ok := AsError(err); ok {
		return domainErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	domainErr, ok := AsError(err)
	return ok && domainErr.Code == code
}

// Is is a readable alias for HasCode at call sites that branch on codes.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// ToHTTPStatus maps a domain error code to an HTTP status code.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInternal, CodeInvariantViolation:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
