package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		want      string
	}{
		{"whole month on round principal", "1000.00", "10", "100.00"},
		{"odd principal", "333.33", "10", "33.33"},
		{"half rounds up", "100.05", "10", "10.01"},
		{"non-default rate", "1000.00", "12.5", "125.00"},
		{"small principal", "1.00", "10", "0.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interest(dec(tt.principal), dec(tt.rate))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestRedemptionTotal(t *testing.T) {
	assert.Equal(t, "1100.00", RedemptionTotal(dec("1000.00"), dec("10")).StringFixed(2))
	assert.Equal(t, "366.66", RedemptionTotal(dec("333.33"), dec("10")).StringFixed(2))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.01", Round2(dec("10.005")).StringFixed(2))
	assert.Equal(t, "-10.01", Round2(dec("-10.005")).StringFixed(2), "half-up means away from zero")
	assert.Equal(t, "10.00", Round2(dec("10.004")).StringFixed(2))
}

func TestIsPositive(t *testing.T) {
	assert.True(t, IsPositive(dec("0.01")))
	assert.False(t, IsPositive(decimal.Zero))
	assert.False(t, IsPositive(dec("-5")))
}
