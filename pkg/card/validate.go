package card

// Reason explains a validation outcome. Exactly one reason applies to any
// result: the first check that fails, or ReasonValid when all pass.
type Reason string

const (
	ReasonValid          Reason = "valid"
	ReasonUnknownScheme  Reason = "unknown_scheme"
	ReasonEmptyNumber    Reason = "empty_number"
	ReasonNotNumeric     Reason = "not_numeric"
	ReasonInvalidLength  Reason = "invalid_length"
	ReasonInvalidPrefix  Reason = "invalid_prefix"
	ReasonChecksumFailed Reason = "checksum_failed"
)

// Result is the outcome of validating one number against one scheme.
// Valid is the boolean summary; Reason carries the diagnostic detail the
// boolean collapses. Length is the normalized digit count (zero when the
// input was empty or the scheme unknown).
type Result struct {
	Scheme Scheme
	Valid  bool
	Reason Reason
	Length int
}

// Validate checks a raw card number against a scheme's definition.
//
// The checks run in a fixed fail-fast order: scheme existence, non-empty
// input, digits-only content after normalization, length membership, issuer
// prefix, and finally the Luhn checksum where the scheme requires one. Pure
// function of its inputs and the static registry; no side effects.
func Validate(rawNumber string, scheme Scheme) Result {
	def, ok := Lookup(scheme)
	if !ok {
		return Result{Scheme: scheme, Reason: ReasonUnknownScheme}
	}

	if rawNumber == "" {
		return Result{Scheme: scheme, Reason: ReasonEmptyNumber}
	}

	normalized := Normalize(rawNumber)
	if !isDigits(normalized) {
		return Result{Scheme: scheme, Reason: ReasonNotNumeric}
	}

	length := len(normalized)
	if !def.MatchesLength(length) {
		return Result{Scheme: scheme, Reason: ReasonInvalidLength, Length: length}
	}

	if !def.MatchesPrefix(normalized) {
		return Result{Scheme: scheme, Reason: ReasonInvalidPrefix, Length: length}
	}

	if def.RequiresChecksum && !CheckLuhn(normalized) {
		return Result{Scheme: scheme, Reason: ReasonChecksumFailed, Length: length}
	}

	return Result{Scheme: scheme, Valid: true, Reason: ReasonValid, Length: length}
}

// ValidateCode is Validate for callers holding an external scheme code.
// Unrecognized codes yield an unknown_scheme result, not an error.
func ValidateCode(rawNumber, code string) Result {
	scheme, err := ParseScheme(code)
	if err != nil {
		return Result{Reason: ReasonUnknownScheme}
	}
	return Validate(rawNumber, scheme)
}

// IsValidNumber reports whether rawNumber is a format- and checksum-valid
// instance of the named network's numbering plan. This is the boolean
// contract of the engine: every failure mode, including an unrecognized
// code, collapses to false.
func IsValidNumber(rawNumber, code string) bool {
	return ValidateCode(rawNumber, code).Valid
}
