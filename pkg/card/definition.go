package card

import (
	"slices"
	"strconv"
	"strings"
)

// Definition describes one card network's numbering plan: the digit lengths
// it issues and the literal issuer prefixes (IIN ranges) it owns, plus
// whether account numbers carry a Luhn check digit.
//
// Definitions are immutable values; callers must not modify the slices
// returned through them.
type Definition struct {
	Scheme           Scheme
	DisplayName      string
	Lengths          []int
	Prefixes         []string
	RequiresChecksum bool
}

// MatchesLength reports whether n is an issued digit count for this network.
func (d Definition) MatchesLength(n int) bool {
	return slices.Contains(d.Lengths, n)
}

// MatchesPrefix reports whether the digit string starts with one of the
// network's issuer prefixes. Comparison is exact-string and left-anchored.
func (d Definition) MatchesPrefix(digits string) bool {
	for _, prefix := range d.Prefixes {
		if strings.HasPrefix(digits, prefix) {
			return true
		}
	}
	return false
}

// registry is the process-wide scheme table. It is populated once at package
// initialization from the literal dataset below and never mutated, which
// makes concurrent lookups safe without synchronization.
var registry = map[Scheme]Definition{
	SchemeAmex: {
		Scheme:           SchemeAmex,
		DisplayName:      "American Express",
		Lengths:          []int{15},
		Prefixes:         []string{"34", "37"},
		RequiresChecksum: true,
	},
	SchemeUnionPay: {
		Scheme:           SchemeUnionPay,
		DisplayName:      "UnionPay",
		Lengths:          []int{16, 17, 18, 19},
		Prefixes:         []string{"62"},
		RequiresChecksum: true,
	},
	SchemeCarteBlanche: {
		Scheme:           SchemeCarteBlanche,
		DisplayName:      "Carte Blanche",
		Lengths:          []int{14},
		Prefixes:         prefixRange(300, 305),
		RequiresChecksum: true,
	},
	SchemeDinersClub: {
		Scheme:           SchemeDinersClub,
		DisplayName:      "Diners Club",
		Lengths:          []int{14, 16},
		Prefixes:         append(prefixRange(300, 305), "309", "36", "38", "39", "54", "55"),
		RequiresChecksum: true,
	},
	SchemeDiscover: {
		Scheme:           SchemeDiscover,
		DisplayName:      "Discover",
		Lengths:          []int{16, 19},
		Prefixes:         []string{"6011", "622", "644", "645", "647", "648", "649", "656", "65"},
		RequiresChecksum: true,
	},
	SchemeInterPayment: {
		Scheme:           SchemeInterPayment,
		DisplayName:      "InterPayment",
		Lengths:          []int{16, 17, 18, 19},
		Prefixes:         []string{"4"},
		RequiresChecksum: true,
	},
	SchemeJCB: {
		Scheme:           SchemeJCB,
		DisplayName:      "JCB",
		Lengths:          []int{16},
		Prefixes:         prefixRange(352, 358),
		RequiresChecksum: true,
	},
	SchemeMaestro: {
		Scheme:           SchemeMaestro,
		DisplayName:      "Maestro",
		Lengths:          []int{12, 13, 14, 15, 16, 18, 19},
		Prefixes:         append([]string{"50"}, prefixRange(56, 69)...),
		RequiresChecksum: true,
	},
	SchemeDankort: {
		Scheme:           SchemeDankort,
		DisplayName:      "Dankort",
		Lengths:          []int{16},
		Prefixes:         []string{"5019", "4175", "4571", "4"},
		RequiresChecksum: true,
	},
	SchemeMir: {
		Scheme:           SchemeMir,
		DisplayName:      "Mir",
		Lengths:          []int{16},
		Prefixes:         prefixRange(2200, 2204),
		RequiresChecksum: true,
	},
	SchemeMastercard: {
		Scheme:           SchemeMastercard,
		DisplayName:      "Mastercard",
		Lengths:          []int{16},
		Prefixes:         append(prefixRange(51, 55), prefixRange(22, 27)...),
		RequiresChecksum: true,
	},
	SchemeVisa: {
		Scheme:           SchemeVisa,
		DisplayName:      "Visa",
		Lengths:          []int{13, 16, 19},
		Prefixes:         []string{"4"},
		RequiresChecksum: true,
	},
	SchemeUATP: {
		Scheme:           SchemeUATP,
		DisplayName:      "UATP",
		Lengths:          []int{15},
		Prefixes:         []string{"1"},
		RequiresChecksum: true,
	},
	SchemeVerve: {
		Scheme:           SchemeVerve,
		DisplayName:      "Verve",
		Lengths:          []int{16, 19},
		Prefixes:         []string{"506", "650"},
		RequiresChecksum: true,
	},
	SchemeCIBC: {
		Scheme:           SchemeCIBC,
		DisplayName:      "CIBC",
		Lengths:          []int{16},
		Prefixes:         []string{"4506"},
		RequiresChecksum: false,
	},
	SchemeRBC: {
		Scheme:           SchemeRBC,
		DisplayName:      "Royal Bank of Canada",
		Lengths:          []int{16},
		Prefixes:         []string{"45"},
		RequiresChecksum: false,
	},
	SchemeTDTrust: {
		Scheme:           SchemeTDTrust,
		DisplayName:      "TD Canada Trust",
		Lengths:          []int{16},
		Prefixes:         []string{"589297"},
		RequiresChecksum: false,
	},
	SchemeScotiabank: {
		Scheme:           SchemeScotiabank,
		DisplayName:      "Scotiabank",
		Lengths:          []int{16},
		Prefixes:         []string{"4536"},
		RequiresChecksum: false,
	},
	SchemeBMOABM: {
		Scheme:           SchemeBMOABM,
		DisplayName:      "BMO ABM",
		Lengths:          []int{16},
		Prefixes:         []string{"500"},
		RequiresChecksum: false,
	},
	SchemeHSBC: {
		Scheme:           SchemeHSBC,
		DisplayName:      "HSBC Canada",
		Lengths:          []int{16},
		Prefixes:         []string{"500"},
		RequiresChecksum: false,
	},
}

// Lookup returns the definition for a scheme. A miss means the scheme is not
// supported; that is a normal outcome, not an error.
func Lookup(scheme Scheme) (Definition, bool) {
	def, ok := registry[scheme]
	return def, ok
}

// LookupCode parses an external code and returns its definition.
// Lookup is case-insensitive per the ParseScheme contract.
func LookupCode(code string) (Definition, bool) {
	scheme, err := ParseScheme(code)
	if err != nil {
		return Definition{}, false
	}
	return Lookup(scheme)
}

// Definitions returns every scheme definition in catalog order.
func Definitions() []Definition {
	out := make([]Definition, 0, len(allSchemes))
	for _, scheme := range allSchemes {
		out = append(out, registry[scheme])
	}
	return out
}

// prefixRange enumerates the inclusive numeric range [start, end] as literal
// prefix strings, e.g. prefixRange(300, 305) -> "300".."305". Both bounds
// must have the same digit width.
func prefixRange(start, end int) []string {
	out := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out
}
