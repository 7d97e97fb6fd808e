package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errors "panguard/pkg/domain-errors"
)

func TestParseScheme(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scheme
		wantErr bool
	}{
		{"lowercase code", "visa", SchemeVisa, false},
		{"uppercase code", "VISA", SchemeVisa, false},
		{"mixed case code", "MasterCard", SchemeMastercard, false},
		{"amex", "amex", SchemeAmex, false},
		{"dinersclub", "dinersclub", SchemeDinersClub, false},
		{"bank program code", "tdtrust", SchemeTDTrust, false},
		{"unknown code", "solo", "", true},
		{"near miss with whitespace", " visa", "", true},
		{"empty code", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScheme(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScheme_ErrorCodes(t *testing.T) {
	_, err := ParseScheme("")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = ParseScheme("notacard")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

// TestParseScheme_RoundTrip verifies every registered scheme parses back to
// itself from its string form, in any letter case.
func TestParseScheme_RoundTrip(t *testing.T) {
	for _, scheme := range Schemes() {
		t.Run(scheme.String(), func(t *testing.T) {
			got, err := ParseScheme(scheme.String())
			require.NoError(t, err)
			assert.Equal(t, scheme, got)

			upper, err := ParseScheme(upperASCII(scheme.String()))
			require.NoError(t, err)
			assert.Equal(t, scheme, upper)
		})
	}
}

func TestScheme_IsValid(t *testing.T) {
	assert.True(t, SchemeVisa.IsValid())
	assert.True(t, SchemeHSBC.IsValid())
	assert.False(t, Scheme("Visa").IsValid(), "membership is exact, parsing handles case folding")
	assert.False(t, Scheme("").IsValid())
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
