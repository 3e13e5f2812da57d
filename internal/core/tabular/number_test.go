package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"integer", "123", 123, true},
		{"decimal", "45.67", 45.67, true},
		{"thousands separators", "1,234,567", 1234567, true},
		{"embedded spaces", "1 234", 1234, true},
		{"padded", "  123  ", 123, true},
		{"percent keeps magnitude", "12.5%", 12.5, true},
		{"negative percent", "-3.2%", -3.2, true},
		{"up marker", "▲12.5", 12.5, true},
		{"down marker", "▼100", -100, true},
		{"down marker overrides sign", "▼-100", -100, true},
		{"explicit plus", "+123", 123, true},
		{"currency glyphs", "₩1,234원", 1234, true},
		{"negative", "-45", -45, true},
		{"empty", "", 0, false},
		{"na marker", "N/A", 0, false},
		{"dash marker", "-", 0, false},
		{"text", "abc", 0, false},
		{"multiple dots", "12.34.56", 0, false},
		{"multiple minus", "12--34", 0, false},
		{"interior minus", "12-34", 0, false},
		{"lone dot", ".", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 1e-9)
			}
		})
	}
}

func TestValueFloat(t *testing.T) {
	got, ok := Number(42.5).Float()
	require.True(t, ok)
	assert.InDelta(t, 42.5, got, 1e-9)

	got, ok = String("1,000").Float()
	require.True(t, ok)
	assert.InDelta(t, 1000, got, 1e-9)

	_, ok = String("hello").Float()
	assert.False(t, ok)

	_, ok = Absent().Float()
	assert.False(t, ok)
}
