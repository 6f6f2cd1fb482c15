package plan

import "github.com/iwvelando/household-plan/pkg/constants"

// SeedOverrides builds the default sidecar for a plan: one growth rate per
// year transition, seeded with each person's flat rate, and one zero
// prepayment per plan year.
func SeedOverrides(in Input) Overrides {
	return Overrides{}.Fit(in)
}

// Fit resizes the overrides to the plan horizon. Supplied entries are kept;
// missing growth entries take the person's flat rate and missing prepayments
// are zero. A growth sequence is seeded only for persons with an income.
func (o Overrides) Fit(in Input) Overrides {
	horizon := in.Settings.HorizonYears
	if horizon < 1 {
		return Overrides{}
	}
	transitions := horizon - 1

	fitted := Overrides{
		HomeLoanPrepayment: resize(o.HomeLoanPrepayment, horizon, 0),
	}
	if inc := in.IncomeFor(constants.PersonYou); inc != nil {
		fitted.GrowthRatesYou = resize(o.GrowthRatesYou, transitions, inc.AnnualGrowthRate)
	}
	if inc := in.IncomeFor(constants.PersonWife); inc != nil {
		fitted.GrowthRatesWife = resize(o.GrowthRatesWife, transitions, inc.AnnualGrowthRate)
	}
	return fitted
}

func resize(values []float64, n int, fill float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(values) {
			out[i] = values[i]
		} else {
			out[i] = fill
		}
	}
	return out
}
