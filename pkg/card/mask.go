package card

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// MaskNumber redacts a digit string for logs and audit records, keeping the
// first six digits (the IIN) and the last four visible. Strings of ten
// digits or fewer are masked entirely, since first-six-last-four would
// expose most of them.
func MaskNumber(digits string) string {
	if len(digits) <= 10 {
		return strings.Repeat("*", len(digits))
	}
	return digits[:6] + strings.Repeat("*", len(digits)-10) + digits[len(digits)-4:]
}

// Fingerprint returns a hex-encoded SHA-256 digest of a normalized number.
// Audit records store the fingerprint instead of the number itself so that
// repeat submissions remain correlatable without retaining card data.
func Fingerprint(digits string) string {
	sum := sha256.Sum256([]byte(digits))
	return hex.EncodeToString(sum[:])
}
