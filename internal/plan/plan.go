// Package plan defines the household plan model consumed by the projection
// engine, along with its validation and override seeding.
package plan

import (
	"strings"

	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/finance"
	"github.com/iwvelando/household-plan/pkg/loans"
)

// Record types shared with the calculators.
type (
	Income         = finance.Income
	MonthlyExpense = finance.MonthlyExpense
	BigExpense     = finance.BigExpense
	Investment     = finance.Investment
	SIP            = finance.SIP
)

// Settings holds the projection window and economic assumptions.
type Settings struct {
	StartYear     int     `json:"startYear" yaml:"startYear" mapstructure:"startYear"`
	HorizonYears  int     `json:"horizonYears" yaml:"horizonYears" mapstructure:"horizonYears"`
	Currency      string  `json:"currency" yaml:"currency" mapstructure:"currency"`
	InflationRate float64 `json:"inflationRate" yaml:"inflationRate" mapstructure:"inflationRate"` // percent
}

// Loan is an amortizing loan. PrimaryResidence marks the home loan, which
// receives prepayments and is reported separately.
type Loan struct {
	Name             string  `json:"name" yaml:"name" mapstructure:"name"`
	Principal        float64 `json:"principal" yaml:"principal" mapstructure:"principal"`
	APR              float64 `json:"apr" yaml:"apr" mapstructure:"apr"` // percent
	TenureMonths     int     `json:"tenureMonths" yaml:"tenureMonths" mapstructure:"tenureMonths"`
	StartYear        int     `json:"startYear" yaml:"startYear" mapstructure:"startYear"`
	StartMonth       int     `json:"startMonth" yaml:"startMonth" mapstructure:"startMonth"`
	PrimaryResidence bool    `json:"primaryResidence,omitempty" yaml:"primaryResidence,omitempty" mapstructure:"primaryResidence"`
}

// Terms converts the loan into amortization terms.
func (l Loan) Terms() loans.Terms {
	return loans.Terms{
		Name:         l.Name,
		Principal:    l.Principal,
		APR:          l.APR,
		TenureMonths: l.TenureMonths,
		StartYear:    l.StartYear,
		StartMonth:   l.StartMonth,
	}
}

// Input is a complete household plan.
type Input struct {
	Settings        Settings         `json:"settings" yaml:"settings" mapstructure:"settings"`
	Incomes         []Income         `json:"incomes" yaml:"incomes" mapstructure:"incomes"`
	MonthlyExpenses []MonthlyExpense `json:"monthlyExpenses" yaml:"monthlyExpenses" mapstructure:"monthlyExpenses"`
	BigExpenses     []BigExpense     `json:"bigExpenses" yaml:"bigExpenses" mapstructure:"bigExpenses"`
	Investment      Investment       `json:"investment" yaml:"investment" mapstructure:"investment"`
	Loans           []Loan           `json:"loans" yaml:"loans" mapstructure:"loans"`
}

// EndYear returns the last calendar year of the projection.
func (in Input) EndYear() int {
	return in.Settings.StartYear + in.Settings.HorizonYears - 1
}

// IncomeFor returns the first income belonging to person, or nil.
func (in Input) IncomeFor(person string) *Income {
	for i := range in.Incomes {
		if in.Incomes[i].Person == person {
			return &in.Incomes[i]
		}
	}
	return nil
}

// HomeLoanIndex returns the index of the home loan. A loan flagged
// PrimaryResidence wins; otherwise the first loan whose name contains "home"
// (any case) is used. ok is false when the plan has no home loan.
func (in Input) HomeLoanIndex() (idx int, ok bool) {
	for i, l := range in.Loans {
		if l.PrimaryResidence {
			return i, true
		}
	}
	for i, l := range in.Loans {
		if isHomeLoanName(l.Name) {
			return i, true
		}
	}
	return -1, false
}

// HomeLoan returns the home loan, or nil.
func (in Input) HomeLoan() *Loan {
	if idx, ok := in.HomeLoanIndex(); ok {
		return &in.Loans[idx]
	}
	return nil
}

func isHomeLoanName(name string) bool {
	return strings.Contains(strings.ToLower(name), constants.HomeLoanKeyword)
}

// Overrides are per-session adjustments supplied alongside a plan. Growth
// rate entry j applies between plan years j and j+1; prepayment entry i is
// applied in January of plan year i. A nil growth slice means the flat
// annualGrowthRate is used.
type Overrides struct {
	GrowthRatesYou     []float64 `json:"growthRatesYou,omitempty" yaml:"growthRatesYou,omitempty" mapstructure:"growthRatesYou"`
	GrowthRatesWife    []float64 `json:"growthRatesWife,omitempty" yaml:"growthRatesWife,omitempty" mapstructure:"growthRatesWife"`
	HomeLoanPrepayment []float64 `json:"homeLoanPrepayment,omitempty" yaml:"homeLoanPrepayment,omitempty" mapstructure:"homeLoanPrepayment"`
}

// GrowthRatesFor returns the growth overrides for person.
func (o Overrides) GrowthRatesFor(person string) []float64 {
	switch person {
	case constants.PersonYou:
		return o.GrowthRatesYou
	case constants.PersonWife:
		return o.GrowthRatesWife
	}
	return nil
}

// YearResult is one projected plan year.
type YearResult struct {
	Year int `json:"year"`

	IncomeYou        float64 `json:"incomeYou"`
	IncomeWife       float64 `json:"incomeWife"`
	TotalIncome      float64 `json:"totalIncome"`
	TaxYou           float64 `json:"taxYou"`
	TaxWife          float64 `json:"taxWife"`
	TotalTax         float64 `json:"totalTax"`
	FinalIncomeYou   float64 `json:"finalIncomeYou"`
	FinalIncomeWife  float64 `json:"finalIncomeWife"`
	TotalFinalIncome float64 `json:"totalFinalIncome"`

	FixedAnnual     float64 `json:"fixedAnnual"`
	TentativeAnnual float64 `json:"tentativeAnnual"`
	BigAnnual       float64 `json:"bigAnnual"`

	LoanInterest  float64 `json:"loanInterest"`
	LoanPrincipal float64 `json:"loanPrincipal"`
	LoansTotal    float64 `json:"loansTotal"`

	InvestmentContrib float64 `json:"investmentContrib"`
	NetSavings        float64 `json:"netSavings"`
	CorpusEnd         float64 `json:"corpusEnd"`

	HomeLoanEMI              float64 `json:"homeLoanEMI"`
	HomeLoanPendingPrincipal float64 `json:"homeLoanPendingPrincipal"`
	HomeLoanPrepayment       float64 `json:"homeLoanPrepayment"`
}

// TotalExpenses returns every outflow except investment contributions.
func (r YearResult) TotalExpenses() float64 {
	return r.FixedAnnual + r.TentativeAnnual + r.BigAnnual + r.LoansTotal
}

// Output is the full projection.
type Output struct {
	Results []YearResult `json:"results"`
}
