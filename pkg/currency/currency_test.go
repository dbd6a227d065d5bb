package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "CZK", Clean(" czk "))
	assert.Equal(t, "EUR", Clean(`"EUR"`))
	assert.Equal(t, "USD", Clean("usd"))
	assert.Equal(t, "", Clean("   "))

	// unrecognized labels pass through trimmed
	assert.Equal(t, "points", Clean(" points "))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("CZK"))
	assert.True(t, Known("eur"))
	assert.False(t, Known("XXX123"))
	assert.False(t, Known(""))
}

func TestFromSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"-150,00 Kč", "CZK", true},
		{"€12.00", "EUR", true},
		{"£5", "GBP", true},
		{"R$ 30,00", "BRL", true},
		{"$4.50", "USD", true},
		{"100 zł", "PLN", true},
		{"42.00", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			code, ok := FromSymbol(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, code)
		})
	}
}
