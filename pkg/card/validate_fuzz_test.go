package card

import (
	"strings"
	"testing"
)

// FuzzParseScheme hunts for inputs that break the parsing contract.
//
// Invariants checked:
//   - never panics, whatever the bytes
//   - a parsed scheme is a registry member and round-trips through its code
//   - rejection always comes with an error, never a zero-value success
func FuzzParseScheme(f *testing.F) {
	f.Add("visa")
	f.Add("VISA")
	f.Add("mastercard")
	f.Add("tdtrust")
	f.Add("solo")
	f.Add("")
	f.Add(" visa")
	f.Add("visa\x00")
	f.Add("vi\xffsa")

	f.Fuzz(func(t *testing.T, code string) {
		scheme, err := ParseScheme(code)
		if err != nil {
			if scheme != "" {
				t.Fatalf("ParseScheme(%q) returned %q alongside error %v", code, scheme, err)
			}
			return
		}
		if !scheme.IsValid() {
			t.Fatalf("ParseScheme(%q) produced unregistered scheme %q", code, scheme)
		}
		again, err := ParseScheme(scheme.String())
		if err != nil || again != scheme {
			t.Fatalf("round-trip of %q failed: got %q, err %v", scheme, again, err)
		}
	})
}

// FuzzValidateCode exercises the full decision path with arbitrary numbers
// and codes.
//
// Invariants checked:
//   - never panics
//   - the boolean summary always agrees with the detailed result
//   - a valid result means the normalized digits really have a registered
//     length for the scheme
//   - the reason is always one of the published values
func FuzzValidateCode(f *testing.F) {
	f.Add("4111111111111111", "visa")
	f.Add("4111 1111 1111 1111", "VISA")
	f.Add("340000000000009", "amex")
	f.Add("", "visa")
	f.Add("4111111111111112", "visa")
	f.Add("41x1111111111111", "visa")
	f.Add("4111111111111111", "unknowncode")
	f.Add("5000000000000000", "bmoabm")
	f.Add("\x80\x81", "\xff")

	known := map[Reason]bool{
		ReasonValid:          true,
		ReasonUnknownScheme:  true,
		ReasonEmptyNumber:    true,
		ReasonNotNumeric:     true,
		ReasonInvalidLength:  true,
		ReasonInvalidPrefix:  true,
		ReasonChecksumFailed: true,
	}

	f.Fuzz(func(t *testing.T, number, code string) {
		result := ValidateCode(number, code)

		if IsValidNumber(number, code) != result.Valid {
			t.Fatalf("summary and result disagree for number=%q code=%q", number, code)
		}
		if !known[result.Reason] {
			t.Fatalf("unpublished reason %q for number=%q code=%q", result.Reason, number, code)
		}
		if result.Valid != (result.Reason == ReasonValid) {
			t.Fatalf("valid flag and reason out of sync: %+v", result)
		}

		if result.Valid {
			def, ok := Lookup(result.Scheme)
			if !ok {
				t.Fatalf("valid result for unregistered scheme %q", result.Scheme)
			}
			normalized := Normalize(number)
			if len(normalized) != result.Length {
				t.Fatalf("result length %d does not match normalized %q", result.Length, normalized)
			}
			if !def.MatchesLength(result.Length) {
				t.Fatalf("valid result with unissued length %d for %s", result.Length, result.Scheme)
			}
		}
	})
}

// FuzzNormalize checks the separator stripping never does more than promised.
//
// Invariants checked:
//   - output carries no spaces or hyphens
//   - output never grows
//   - normalization is idempotent
//   - separator-free input passes through untouched
func FuzzNormalize(f *testing.F) {
	f.Add("4111 1111 1111 1111")
	f.Add("4111-1111-1111-1111")
	f.Add("")
	f.Add(" - ")
	f.Add("alreadyclean")
	f.Add("\x00- \xfe")

	f.Fuzz(func(t *testing.T, raw string) {
		got := Normalize(raw)

		if strings.ContainsAny(got, " -") {
			t.Fatalf("Normalize(%q) kept a separator: %q", raw, got)
		}
		if len(got) > len(raw) {
			t.Fatalf("Normalize(%q) grew the input to %q", raw, got)
		}
		if again := Normalize(got); again != got {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", raw, got, again)
		}
		if !strings.ContainsAny(raw, " -") && got != raw {
			t.Fatalf("Normalize(%q) altered separator-free input to %q", raw, got)
		}
	})
}
