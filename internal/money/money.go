// Package money provides exact base-10 arithmetic for monetary and
// percentage values. All money math goes through decimals and converts
// back to float64 only at the result boundary, so currency sums like
// 0.1 + 0.2 come out as exactly 0.3 instead of drifting.
package money

import (
	"github.com/shopspring/decimal"
)

// Add returns a + b.
func Add(a, b float64) float64 {
	r, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Float64()
	return r
}

// Sub returns a - b.
func Sub(a, b float64) float64 {
	r, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Float64()
	return r
}

// Mul returns a * b.
func Mul(a, b float64) float64 {
	r, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Float64()
	return r
}

// Div returns a / b. Division by zero returns 0; callers that need
// infinity semantics handle the zero denominator themselves.
func Div(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	r, _ := decimal.NewFromFloat(a).Div(decimal.NewFromFloat(b)).Float64()
	return r
}

// Sum returns the exact sum of values.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	r, _ := total.Float64()
	return r
}

// Mean returns the exact mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	r, _ := total.Div(decimal.NewFromInt(int64(len(values)))).Float64()
	return r
}

// RoundCurrency rounds to 2 decimal places, the currency boundary.
func RoundCurrency(v float64) float64 {
	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}

// Round rounds to the given number of decimal places.
func Round(v float64, places int32) float64 {
	r, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return r
}
