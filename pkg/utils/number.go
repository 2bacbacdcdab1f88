package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

var crore = decimal.NewFromInt(10_000_000)

// Round rounds v to the given number of decimal places, halves away from zero.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// FormatRupee renders v as "₹1234.50".
func FormatRupee(v float64) string {
	return "₹" + decimal.NewFromFloat(v).StringFixed(2)
}

// FormatCrore renders a rupee amount in crores, e.g. "₹1234.57 Cr".
func FormatCrore(v float64) string {
	return "₹" + decimal.NewFromFloat(v).Div(crore).StringFixed(2) + " Cr"
}

// PercentChange returns (current-base)/base*100, or 0 when base is not positive.
func PercentChange(current, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return (current - base) / base * 100
}
