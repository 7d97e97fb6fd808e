package card

import "strings"

// Normalize strips the non-semantic formatting characters (spaces and
// hyphens) from a raw card number. All other characters pass through
// unchanged; edge and interior separators are removed identically.
func Normalize(raw string) string {
	if !strings.ContainsAny(raw, " -") {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == ' ' || c == '-' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// isDigits reports whether s is non-empty and composed entirely of ASCII
// decimal digits. Signs, decimal points, and exponent notation do not count:
// account numbers are digit strings, not numbers.
func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
