package forecast

import (
	"math"
	"testing"

	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/tax"
	"github.com/iwvelando/household-plan/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func salaryOnlyPlan() plan.Input {
	return testutil.SalaryOnlyPlan(2025)
}

func householdPlan() plan.Input {
	return testutil.HouseholdPlan(2025, 12)
}

func TestProjectSalaryOnlyScenario(t *testing.T) {
	out := ProjectPlan(salaryOnlyPlan(), DefaultOptions())

	require.Len(t, out.Results, 1)
	r := out.Results[0]
	assert.Equal(t, 2025, r.Year)
	assert.InDelta(t, 1200000, r.IncomeYou, 1e-6)
	assert.InDelta(t, 163800, r.TaxYou, 1e-6)
	assert.InDelta(t, 1036200, r.TotalFinalIncome, 1e-6)
	assert.InDelta(t, r.TotalFinalIncome, r.NetSavings, 1e-9)
	assert.Zero(t, r.IncomeWife)
	assert.Zero(t, r.LoansTotal)
	assert.Zero(t, r.CorpusEnd)
}

func TestProjectInvariants(t *testing.T) {
	in := householdPlan()
	out := ProjectPlan(in, DefaultOptions())

	require.Len(t, out.Results, in.Settings.HorizonYears)
	for i, r := range out.Results {
		assert.Equal(t, in.Settings.StartYear+i, r.Year)
		assert.InDelta(t, r.IncomeYou+r.IncomeWife, r.TotalIncome, 1e-6)
		assert.InDelta(t, r.TaxYou+r.TaxWife, r.TotalTax, 1e-6)
		assert.InDelta(t, r.TotalIncome-r.TotalTax, r.TotalFinalIncome, 1e-6)
		assert.InDelta(t, r.LoanInterest+r.LoanPrincipal, r.LoansTotal, 1e-6)
		expected := r.TotalFinalIncome - (r.FixedAnnual + r.TentativeAnnual + r.BigAnnual + r.LoansTotal + r.InvestmentContrib)
		assert.InDelta(t, expected, r.NetSavings, 1e-6)
	}

	require.NotNil(t, testutil.FindYear(out, 2036))
	assert.Nil(t, testutil.FindYear(out, 2037))

	// Big expenses land in 2028, 2029 and 2034 only.
	for _, r := range out.Results {
		switch r.Year {
		case 2028:
			assert.InDelta(t, 1200000, r.BigAnnual, 1e-6)
		case 2029:
			assert.InDelta(t, 2500000, r.BigAnnual, 1e-6)
		case 2034:
			assert.InDelta(t, 1200000*math.Pow(1.06, 6), r.BigAnnual, 1e-6)
		default:
			assert.Zero(t, r.BigAnnual, "year %d", r.Year)
		}
	}
}

func TestProjectIsDeterministicAndDoesNotMutateInput(t *testing.T) {
	in := householdPlan()
	pristine := householdPlan()
	opts := Options{
		IncludeTentative: true,
		Overrides: plan.Overrides{
			GrowthRatesYou:     []float64{10, 9, 8},
			HomeLoanPrepayment: []float64{0, 500000, 500000},
		},
	}

	first := ProjectPlan(in, opts)
	second := ProjectPlan(in, opts)

	assert.Equal(t, first, second)
	assert.Equal(t, pristine, in)
	assert.Equal(t, []float64{0, 500000, 500000}, opts.Overrides.HomeLoanPrepayment)
}

func TestProjectGrowthOverridePrecedence(t *testing.T) {
	in := salaryOnlyPlan()
	in.Settings.HorizonYears = 2
	in.Incomes[0].AnnualGrowthRate = 5

	flat := ProjectPlan(in, DefaultOptions())
	overridden := ProjectPlan(in, Options{IncludeTentative: true, Overrides: plan.Overrides{GrowthRatesYou: []float64{50}}})

	assert.InDelta(t, 1200000, overridden.Results[0].IncomeYou, 1e-6)
	assert.InDelta(t, 1800000, overridden.Results[1].IncomeYou, 1e-6)
	assert.InDelta(t, 1260000, flat.Results[1].IncomeYou, 1e-6)
}

func TestProjectTentativeToggle(t *testing.T) {
	in := householdPlan()

	with := ProjectPlan(in, Options{IncludeTentative: true})
	without := ProjectPlan(in, Options{IncludeTentative: false})

	assert.InDelta(t, 48000, with.Results[0].TentativeAnnual, 1e-6)
	assert.Zero(t, without.Results[0].TentativeAnnual)
	assert.InDelta(t, with.Results[0].NetSavings+48000, without.Results[0].NetSavings, 1e-6)
	assert.InDelta(t, with.Results[0].FixedAnnual, without.Results[0].FixedAnnual, 1e-9)
}

func TestProjectHomeLoanPrepayment(t *testing.T) {
	in := householdPlan()

	base := ProjectPlan(in, DefaultOptions())
	prepaid := ProjectPlan(in, Options{
		IncludeTentative: true,
		Overrides:        plan.Overrides{HomeLoanPrepayment: []float64{0, 1000000}},
	})

	// 2025 is identical: the first prepayment is in January 2026.
	assert.InDelta(t, base.Results[0].HomeLoanPendingPrincipal, prepaid.Results[0].HomeLoanPendingPrincipal, 1e-6)
	assert.Zero(t, prepaid.Results[0].HomeLoanPrepayment)

	assert.InDelta(t, 1000000, prepaid.Results[1].HomeLoanPrepayment, 1e-6)
	assert.Less(t, prepaid.Results[1].HomeLoanPendingPrincipal, base.Results[1].HomeLoanPendingPrincipal-900000)
	assert.Less(t, prepaid.Results[1].LoanInterest, base.Results[1].LoanInterest)

	// Prepayments shorten the tenure; the installment stays the same.
	assert.InDelta(t, base.Results[1].HomeLoanEMI, prepaid.Results[1].HomeLoanEMI, 1e-6)
}

func TestProjectPrepaymentOnlyAffectsHomeLoan(t *testing.T) {
	in := householdPlan()
	in.Loans = in.Loans[:1] // car loan only

	base := ProjectPlan(in, DefaultOptions())
	prepaid := ProjectPlan(in, Options{IncludeTentative: true, Overrides: plan.Overrides{HomeLoanPrepayment: []float64{0, 300000}}})

	assert.Equal(t, base, prepaid)
	for _, r := range base.Results {
		assert.Zero(t, r.HomeLoanEMI)
		assert.Zero(t, r.HomeLoanPendingPrincipal)
	}
}

func TestProjectHomeLoanFigures(t *testing.T) {
	in := salaryOnlyPlan()
	in.Settings.HorizonYears = 3
	in.Loans = []plan.Loan{{Name: "Apartment", Principal: 1200000, APR: 0, TenureMonths: 24, StartYear: 2025, StartMonth: 7, PrimaryResidence: true}}

	out := ProjectPlan(in, DefaultOptions())

	tests := []struct {
		year    int
		emi     float64
		pending float64
	}{
		{2025, 300000, 900000},
		{2026, 600000, 300000},
		{2027, 300000, 0},
	}

	for i, tt := range tests {
		r := out.Results[i]
		assert.Equal(t, tt.year, r.Year)
		assert.InDelta(t, tt.emi, r.HomeLoanEMI, 1e-6)
		assert.InDelta(t, tt.pending, r.HomeLoanPendingPrincipal, 1e-6)
		assert.InDelta(t, r.HomeLoanEMI, r.LoansTotal, 1e-6)
	}
}

func TestProjectPayoffYearPaysFullInstallment(t *testing.T) {
	in := salaryOnlyPlan()
	in.Settings.HorizonYears = 3
	in.Loans = []plan.Loan{{Name: "Apartment", Principal: 1200000, APR: 0, TenureMonths: 120, StartYear: 2025, StartMonth: 1, PrimaryResidence: true}}

	out := ProjectPlan(in, Options{Overrides: plan.Overrides{HomeLoanPrepayment: []float64{0, 2000000}}})
	require.Len(t, out.Results, 3)

	tests := []struct {
		year       int
		loansTotal float64
		prepayment float64
		pending    float64
	}{
		{2025, 120000, 0, 1080000},
		// The January prepayment clears the balance and that month's EMI is still paid.
		{2026, 10000, 1080000, 0},
		{2027, 0, 0, 0},
	}

	for i, tt := range tests {
		r := out.Results[i]
		assert.Equal(t, tt.year, r.Year)
		assert.InDelta(t, tt.loansTotal, r.LoansTotal, 1e-6, "year %d", tt.year)
		assert.InDelta(t, tt.loansTotal, r.LoanPrincipal, 1e-6, "year %d", tt.year)
		assert.InDelta(t, tt.loansTotal, r.HomeLoanEMI, 1e-6, "year %d", tt.year)
		assert.InDelta(t, tt.prepayment, r.HomeLoanPrepayment, 1e-6, "year %d", tt.year)
		assert.InDelta(t, tt.pending, r.HomeLoanPendingPrincipal, 1e-6, "year %d", tt.year)
		assert.InDelta(t, r.TotalFinalIncome-tt.loansTotal, r.NetSavings, 1e-6, "year %d", tt.year)
	}
}

func TestProjectZeroHorizon(t *testing.T) {
	in := householdPlan()
	in.Settings.HorizonYears = 0

	out := ProjectPlan(in, DefaultOptions())
	assert.NotNil(t, out.Results)
	assert.Empty(t, out.Results)
}

func TestProjectDegenerateLoan(t *testing.T) {
	in := salaryOnlyPlan()
	in.Loans = []plan.Loan{{Name: "Home Loan", Principal: 500000, APR: 7, TenureMonths: 0, StartYear: 2025, StartMonth: 1}}

	out := ProjectPlan(in, Options{Overrides: plan.Overrides{HomeLoanPrepayment: []float64{100000}}})
	require.Len(t, out.Results, 1)
	assert.Zero(t, out.Results[0].LoansTotal)
	assert.Zero(t, out.Results[0].HomeLoanEMI)
}

func TestEngineWithCustomPolicy(t *testing.T) {
	noTax := tax.PolicyFunc(func(float64) float64 { return 0 })
	engine := NewEngine(zap.NewNop(), noTax)

	out := engine.Project(salaryOnlyPlan(), DefaultOptions())
	assert.Zero(t, out.Results[0].TaxYou)
	assert.InDelta(t, 1200000, out.Results[0].NetSavings, 1e-6)
	assert.Equal(t, "custom", engine.Policy().Name())
}

func TestNewEngineDefaults(t *testing.T) {
	engine := NewEngine(nil, nil)
	assert.NotNil(t, engine.logger)
	assert.Equal(t, "old-regime", engine.Policy().Name())
}

func TestProjectLogsNegativeSavings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	engine := NewEngine(zap.New(core), nil)

	in := salaryOnlyPlan()
	in.MonthlyExpenses = []plan.MonthlyExpense{{Name: "lavish", AmountMonthly: 200000}}
	engine.Project(in, DefaultOptions())

	entries := logs.FilterMessageSnippet("negative net savings").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "forecast.Project", entries[0].ContextMap()["op"])
}
