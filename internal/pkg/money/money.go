// Package money centralizes the shop's decimal arithmetic. All amounts are
// fixed-point with 2 fractional digits; rounding is half-up (away from zero),
// matching how the cash register rounds.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds an amount to 2 decimal places, half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Interest computes the monthly interest on a principal at the given
// percentage rate: principal * rate / 100, rounded to 2 decimals.
func Interest(principal, ratePct decimal.Decimal) decimal.Decimal {
	return principal.Mul(ratePct).Div(hundred).Round(2)
}

// RedemptionTotal is the full settlement amount: principal plus one month of
// interest.
func RedemptionTotal(principal, ratePct decimal.Decimal) decimal.Decimal {
	return principal.Add(Interest(principal, ratePct)).Round(2)
}

// IsPositive reports whether the amount is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}
