package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   string
		wantOk bool
	}{
		{"String Amount", "99.99", "99.99", true},
		{"Float", 100.0, "100", true},
		{"Int", 42, "42", true},
		{"Zero String", "0.00", "0", true},
		{"Garbage", "12,34", "0", false},
		{"Nil", nil, "0", false},
		{"Decimal Passthrough", decimal.RequireFromString("1.5"), "1.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToDecimal(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 3, ToInt("3"))
	assert.Equal(t, 3, ToInt(3.0))
	assert.Equal(t, 0, ToInt("abc"))
	assert.Equal(t, 0, ToInt(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "checkout_completed", ToString("checkout_completed"))
	assert.Equal(t, "5", ToString(5))
	assert.Equal(t, "", ToString(nil))
}
