// Package rounding snaps displayed money figures to a product's rounding unit.
package rounding

import "github.com/shopspring/decimal"

// FallbackPlaces is used when the unit is missing or not positive.
const FallbackPlaces int32 = 2

// ToUnit rounds amount to the nearest multiple of unit, ties away from zero.
// A non-positive unit rounds to FallbackPlaces decimal places instead.
func ToUnit(amount, unit decimal.Decimal) decimal.Decimal {
	if !unit.IsPositive() {
		return amount.Round(FallbackPlaces)
	}
	return amount.Div(unit).Round(0).Mul(unit)
}
