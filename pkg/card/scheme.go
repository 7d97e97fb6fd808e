// Package card implements payment-card number validation: a fixed registry of
// card-network definitions, input normalization, length/prefix matching, and
// the Luhn checksum. Everything in this package is a pure computation over
// immutable data and is safe for concurrent use without locking.
//
// The package decides whether a string is a plausible account number for a
// named network. It does not and cannot verify that a number belongs to a
// real, active, or authorized account; that requires an issuer lookup outside
// this module's responsibility.
package card

import (
	dErrors "panguard/pkg/domain-errors"
)

// Scheme identifies a supported card network.
// Invariant: the value must be one of the scheme constants below.
//
// Usage: construct via ParseScheme at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Scheme string

// Supported card networks. The string value is the canonical lowercase code
// used in API payloads and lookups.
const (
	SchemeAmex         Scheme = "amex"
	SchemeUnionPay     Scheme = "unionpay"
	SchemeCarteBlanche Scheme = "carteblanche"
	SchemeDinersClub   Scheme = "dinersclub"
	SchemeDiscover     Scheme = "discover"
	SchemeInterPayment Scheme = "interpayment"
	SchemeJCB          Scheme = "jcb"
	SchemeMaestro      Scheme = "maestro"
	SchemeDankort      Scheme = "dankort"
	SchemeMir          Scheme = "mir"
	SchemeMastercard   Scheme = "mastercard"
	SchemeVisa         Scheme = "visa"
	SchemeUATP         Scheme = "uatp"
	SchemeVerve        Scheme = "verve"
	SchemeCIBC         Scheme = "cibc"
	SchemeRBC          Scheme = "rbc"
	SchemeTDTrust      Scheme = "tdtrust"
	SchemeScotiabank   Scheme = "scotia"
	SchemeBMOABM       Scheme = "bmoabm"
	SchemeHSBC         Scheme = "hsbc"
)

// allSchemes fixes the catalog order for listings and exhaustive iteration.
var allSchemes = []Scheme{
	SchemeAmex,
	SchemeUnionPay,
	SchemeCarteBlanche,
	SchemeDinersClub,
	SchemeDiscover,
	SchemeInterPayment,
	SchemeJCB,
	SchemeMaestro,
	SchemeDankort,
	SchemeMir,
	SchemeMastercard,
	SchemeVisa,
	SchemeUATP,
	SchemeVerve,
	SchemeCIBC,
	SchemeRBC,
	SchemeTDTrust,
	SchemeScotiabank,
	SchemeBMOABM,
	SchemeHSBC,
)

// ParseScheme constructs a Scheme from external input. Codes are matched
// case-insensitively, so "VISA" and "visa" name the same scheme.
//
// Errors: returns CodeInvalidInput when the value is empty or names no
// supported network; no other errors are expected.
func ParseScheme(s string) (Scheme, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "scheme code cannot be empty")
	}
	scheme := Scheme(lowerASCII(s))
	if !scheme.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unsupported scheme code %q", s)
	}
	return scheme, nil
}

// IsValid checks if the scheme is one of the supported enum values.
func (s Scheme) IsValid() bool {
	_, ok := registry[s]
	return ok
}

// String returns the canonical lowercase code.
func (s Scheme) String() string {
	return string(s)
}

// Schemes returns all supported schemes in catalog order.
// The returned slice is a copy; callers may reorder it freely.
func Schemes() []Scheme {
	out := make([]Scheme, len(allSchemes))
	copy(out, allSchemes)
	return out
}

// lowerASCII lowercases A-Z only. Scheme codes are ASCII by construction, and
// avoiding strings.ToLower keeps Unicode case folding (e.g. Kelvin sign)
// from aliasing onto valid codes.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}

	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
