// Package money pins every monetary value to OMR minor-unit precision.
// Amounts are rounded before they are accumulated so that running totals
// stay stable across thousands of rows.
package money

import "github.com/shopspring/decimal"

// Places is the fractional precision of the baisa (1/1000 OMR).
const Places = 3

// Round normalizes an amount to currency precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// FromFloat converts a raw float into a normalized amount.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// Add sums two amounts at currency precision.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Add(Round(b)))
}

// Percent returns part/total as a percentage, treating a zero total as 0
// rather than dividing.
func Percent(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

// EqualWithin reports whether two amounts differ by at most tolerance.
func EqualWithin(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
