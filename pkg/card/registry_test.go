package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistry_Integrity checks the structural invariants every definition
// must satisfy regardless of which network it describes.
func TestRegistry_Integrity(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, len(Schemes()))

	for _, def := range defs {
		t.Run(def.Scheme.String(), func(t *testing.T) {
			assert.True(t, def.Scheme.IsValid())
			assert.Equal(t, lowerASCII(string(def.Scheme)), string(def.Scheme),
				"codes are stored lowercase")
			assert.NotEmpty(t, def.DisplayName)

			require.NotEmpty(t, def.Lengths)
			seen := map[int]bool{}
			for _, n := range def.Lengths {
				assert.GreaterOrEqual(t, n, 12)
				assert.LessOrEqual(t, n, 19)
				assert.False(t, seen[n], "duplicate length %d", n)
				seen[n] = true
			}

			require.NotEmpty(t, def.Prefixes)
			for _, prefix := range def.Prefixes {
				assert.True(t, isDigits(prefix), "prefix %q must be digits", prefix)
			}
		})
	}
}

func TestRegistry_CatalogOrderStable(t *testing.T) {
	defs := Definitions()
	schemes := Schemes()
	require.Equal(t, len(schemes), len(defs))
	for i := range defs {
		assert.Equal(t, schemes[i], defs[i].Scheme)
	}
}

func TestRegistry_ChecksumFlags(t *testing.T) {
	withoutChecksum := map[Scheme]bool{
		SchemeCIBC:       true,
		SchemeRBC:        true,
		SchemeTDTrust:    true,
		SchemeScotiabank: true,
		SchemeBMOABM:     true,
		SchemeHSBC:       true,
	}

	for _, def := range Definitions() {
		assert.Equal(t, !withoutChecksum[def.Scheme], def.RequiresChecksum,
			"unexpected checksum flag for %s", def.Scheme)
	}
}

// TestRegistry_KnownRanges pins the table entries that are easiest to get
// wrong: enumerated prefix ranges, the gap in Maestro's lengths, and the
// overlapping single-digit prefixes.
func TestRegistry_KnownRanges(t *testing.T) {
	mustLookup := func(s Scheme) Definition {
		def, ok := Lookup(s)
		require.True(t, ok)
		return def
	}

	t.Run("maestro skips seventeen", func(t *testing.T) {
		def := mustLookup(SchemeMaestro)
		assert.Equal(t, []int{12, 13, 14, 15, 16, 18, 19}, def.Lengths)
		assert.False(t, def.MatchesLength(17))
	})

	t.Run("maestro prefix band", func(t *testing.T) {
		def := mustLookup(SchemeMaestro)
		assert.Contains(t, def.Prefixes, "50")
		assert.Contains(t, def.Prefixes, "56")
		assert.Contains(t, def.Prefixes, "69")
		assert.NotContains(t, def.Prefixes, "55")
	})

	t.Run("mastercard carries both bands", func(t *testing.T) {
		def := mustLookup(SchemeMastercard)
		assert.ElementsMatch(t,
			[]string{"51", "52", "53", "54", "55", "22", "23", "24", "25", "26", "27"},
			def.Prefixes)
	})

	t.Run("diners club range plus singletons", func(t *testing.T) {
		def := mustLookup(SchemeDinersClub)
		assert.ElementsMatch(t,
			[]string{"300", "301", "302", "303", "304", "305", "309", "36", "38", "39", "54", "55"},
			def.Prefixes)
		assert.Equal(t, []int{14, 16}, def.Lengths)
	})

	t.Run("carte blanche range", func(t *testing.T) {
		def := mustLookup(SchemeCarteBlanche)
		assert.Equal(t, []string{"300", "301", "302", "303", "304", "305"}, def.Prefixes)
	})

	t.Run("jcb range", func(t *testing.T) {
		def := mustLookup(SchemeJCB)
		assert.Equal(t, []string{"352", "353", "354", "355", "356", "357", "358"}, def.Prefixes)
	})

	t.Run("mir range", func(t *testing.T) {
		def := mustLookup(SchemeMir)
		assert.Equal(t, []string{"2200", "2201", "2202", "2203", "2204"}, def.Prefixes)
	})

	t.Run("discover includes broad 65 band", func(t *testing.T) {
		def := mustLookup(SchemeDiscover)
		assert.Contains(t, def.Prefixes, "6011")
		assert.Contains(t, def.Prefixes, "656")
		assert.Contains(t, def.Prefixes, "65")
	})

	t.Run("visa issues three lengths", func(t *testing.T) {
		def := mustLookup(SchemeVisa)
		assert.Equal(t, []int{13, 16, 19}, def.Lengths)
		assert.Equal(t, []string{"4"}, def.Prefixes)
	})

	t.Run("dankort falls back to visa prefix", func(t *testing.T) {
		def := mustLookup(SchemeDankort)
		assert.Equal(t, []string{"5019", "4175", "4571", "4"}, def.Prefixes)
	})

	t.Run("td trust uses six digit prefix", func(t *testing.T) {
		def := mustLookup(SchemeTDTrust)
		assert.Equal(t, []string{"589297"}, def.Prefixes)
	})

	t.Run("bmo and hsbc share a prefix", func(t *testing.T) {
		bmo := mustLookup(SchemeBMOABM)
		hsbc := mustLookup(SchemeHSBC)
		assert.Equal(t, bmo.Prefixes, hsbc.Prefixes)
	})
}

func TestLookupCode(t *testing.T) {
	def, ok := LookupCode("VISA")
	require.True(t, ok)
	assert.Equal(t, SchemeVisa, def.Scheme)

	_, ok = LookupCode("solo")
	assert.False(t, ok)

	_, ok = LookupCode("")
	assert.False(t, ok)
}

func TestDefinition_MatchesPrefix(t *testing.T) {
	def, ok := Lookup(SchemeDiscover)
	require.True(t, ok)

	assert.True(t, def.MatchesPrefix("6011000000000000"))
	assert.True(t, def.MatchesPrefix("6500000000000000"))
	assert.False(t, def.MatchesPrefix("6400000000000000"))
	assert.False(t, def.MatchesPrefix(""))
}
