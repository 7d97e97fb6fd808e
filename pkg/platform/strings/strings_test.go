package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single element",
			input:    "localhost:9092",
			expected: []string{"localhost:9092"},
		},
		{
			name:     "trims whitespace around elements",
			input:    " a , b ,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "drops empty segments",
			input:    "a,,b,",
			expected: []string{"a", "b"},
		},
		{
			name:     "only separators",
			input:    ", ,,",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitAndTrim(tt.input, ","))
		})
	}
}
