// Package testutil provides common fixtures and lookups for testing.
package testutil

import "github.com/iwvelando/household-plan/internal/plan"

// FindYear finds a projected year in the output.
// Returns a pointer to the result if found, nil otherwise.
func FindYear(out plan.Output, year int) *plan.YearResult {
	for i := range out.Results {
		if out.Results[i].Year == year {
			return &out.Results[i]
		}
	}
	return nil
}

// HouseholdPlan returns a two-income plan with every kind of record: fixed
// and tentative expenses, a recurring and a one-off big expense, SIPs, a car
// loan and a home loan that started before the plan.
func HouseholdPlan(startYear, horizonYears int) plan.Input {
	return plan.Input{
		Settings: plan.Settings{StartYear: startYear, HorizonYears: horizonYears, Currency: "INR", InflationRate: 6},
		Incomes: []plan.Income{
			{Person: "you", BaseAmount: 200000, BaseIsMonthly: true, AnnualGrowthRate: 8, BonusAnnual: 300000, RSUsAnnual: 400000},
			{Person: "wife", BaseAmount: 1500000, BaseIsMonthly: false, AnnualGrowthRate: 6, StocksAnnual: 100000},
		},
		MonthlyExpenses: []plan.MonthlyExpense{
			{Name: "rent", AmountMonthly: 45000, InflationLinked: true},
			{Name: "insurance", AmountMonthly: 5000},
			{Name: "gym", AmountMonthly: 4000, InflationLinked: true, Tentative: true},
		},
		BigExpenses: []plan.BigExpense{
			{Name: "car", Amount: 1200000, Year: 3, RecurrenceYears: 6, InflationLinked: true},
			{Name: "wedding", Amount: 2500000, Year: startYear + 4},
		},
		Investment: plan.Investment{
			CurrentCorpus:          2000000,
			MonthlyContribution:    40000,
			ExpectedAnnualReturn:   11,
			ContributionGrowthRate: 5,
			SIPs:                   []plan.SIP{{Name: "index", AmountMonthly: 10000}},
		},
		Loans: []plan.Loan{
			{Name: "Car Loan", Principal: 800000, APR: 9.5, TenureMonths: 60, StartYear: startYear, StartMonth: 4},
			{Name: "Home Loan", Principal: 6000000, APR: 8.4, TenureMonths: 240, StartYear: startYear - 1, StartMonth: 7},
		},
	}
}

// SalaryOnlyPlan returns a single 100,000 a month salary with no growth,
// expenses, loans or investments.
func SalaryOnlyPlan(startYear int) plan.Input {
	return plan.Input{
		Settings: plan.Settings{StartYear: startYear, HorizonYears: 1, Currency: "INR", InflationRate: 5},
		Incomes: []plan.Income{
			{Person: "you", BaseAmount: 100000, BaseIsMonthly: true},
		},
	}
}
