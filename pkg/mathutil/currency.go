// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/household-plan/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// FloorZero clamps negative values to zero.
func FloorZero(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// PercentToRate converts a percentage (7.5) into a rate (0.075).
func PercentToRate(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// MonthlyRate converts an annual percentage into a monthly rate.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / constants.MonthsPerYear / constants.PercentageMultiplier
}

// Compound returns (1+percent/100)^periods.
func Compound(percent float64, periods int) float64 {
	if periods <= 0 {
		return 1
	}
	return math.Pow(1+PercentToRate(percent), float64(periods))
}

// Sanitize replaces NaN and infinite values with zero.
func Sanitize(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return val
}
