package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	t.Run("Fresh validator is valid", func(t *testing.T) {
		assert.True(t, New().Valid())
	})

	t.Run("First error per key wins", func(t *testing.T) {
		v := New()
		v.AddError("symbol", "first")
		v.AddError("symbol", "second")
		assert.Equal(t, "first", v.Errors["symbol"])
	})

	t.Run("Required rejects whitespace", func(t *testing.T) {
		v := New()
		v.Required("   ", "name")
		assert.False(t, v.Valid())
	})
}

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		ok     bool
	}{
		{"ES", true},
		{"BRK.B", true},
		{"BTC/USD", true},
		{"NQ-2024", true},
		{"", false},
		{"WAYTOOLONGSYMBOL", false},
		{"AAPL ", false},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			v := New()
			v.ValidateSymbol(tt.symbol)
			assert.Equal(t, tt.ok, v.Valid())
		})
	}
}

func TestValidateNumeric(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"150", true},
		{"-23.75", true},
		{" 100 ", true},
		{"", true}, // optional fields skip the check
		{"1,000", false},
		{"ten", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := New()
			v.ValidateNumeric(tt.value, "pnl")
			assert.Equal(t, tt.ok, v.Valid())
		})
	}
}

func TestValidateMoodAndSideAndRating(t *testing.T) {
	v := New()
	v.ValidateMood("stressed")
	v.ValidateSide("short")
	v.ValidateRating(5)
	assert.True(t, v.Valid())

	v = New()
	v.ValidateMood("euphoric")
	v.ValidateSide("flat")
	v.ValidateRating(6)
	assert.Len(t, v.Errors, 3)
}
