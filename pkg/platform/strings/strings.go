// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// SplitAndTrim splits s on sep, trims whitespace from each element, and drops
// empties. Used for comma-separated environment lists (broker addresses, API
// key hashes) where stray spaces and trailing commas are common.
//
// Example:
//
//	SplitAndTrim("a, b,, c ", ",")
//	// Returns: []string{"a", "b", "c"}
func SplitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
