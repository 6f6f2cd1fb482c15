package finance

import (
	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/mathutil"
)

// BaseAnnual returns the yearly base salary.
func (i Income) BaseAnnual() float64 {
	if i.BaseIsMonthly {
		return i.BaseAmount * constants.MonthsPerYear
	}
	return i.BaseAmount
}

// GrowthFactor compounds income growth up to yearIndex. Without overrides
// the flat rate compounds every year. With overrides, entry j is the percent
// growth from year j to j+1; missing or non-numeric entries count as 0.
func GrowthFactor(flatRate float64, yearIndex int, overrides []float64) float64 {
	if overrides == nil {
		return mathutil.Compound(flatRate, yearIndex)
	}
	factor := 1.0
	for j := 0; j < yearIndex; j++ {
		rate := 0.0
		if j < len(overrides) {
			rate = mathutil.Sanitize(overrides[j])
		}
		factor *= 1 + mathutil.PercentToRate(rate)
	}
	return factor
}

// AnnualIncome returns the gross income for a plan year. Bonus, stocks and
// RSUs grow with the same factor as the base. A nil income earns nothing.
func AnnualIncome(income *Income, yearIndex int, overrides []float64) float64 {
	if income == nil {
		return 0
	}
	gross := income.BaseAnnual() + income.BonusAnnual + income.StocksAnnual + income.RSUsAnnual
	return gross * GrowthFactor(income.AnnualGrowthRate, yearIndex, overrides)
}
