// Package forecast projects a household plan into year-by-year results.
package forecast

import (
	"fmt"

	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/finance"
	"github.com/iwvelando/household-plan/pkg/loans"
	"github.com/iwvelando/household-plan/pkg/tax"
	"go.uber.org/zap"
)

// Options control a single projection.
type Options struct {
	// IncludeTentative adds tentative monthly expenses to each year.
	IncludeTentative bool
	Overrides        plan.Overrides
}

// DefaultOptions includes tentative expenses and applies no overrides.
func DefaultOptions() Options {
	return Options{IncludeTentative: true}
}

// Engine runs projections with a fixed tax policy.
type Engine struct {
	logger      *zap.Logger
	policy      tax.Policy
	schedules   *loans.AmortizationScheduleGenerator
	investments *finance.InvestmentProcessor
	expenses    *finance.ExpenseProcessor
}

// NewEngine creates an engine. A nil logger disables logging and a nil
// policy selects tax.OldRegime.
func NewEngine(logger *zap.Logger, policy tax.Policy) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == nil {
		policy = tax.OldRegime()
	}
	return &Engine{
		logger:      logger,
		policy:      policy,
		schedules:   loans.NewAmortizationScheduleGenerator(logger),
		investments: finance.NewInvestmentProcessor(logger),
		expenses:    finance.NewExpenseProcessor(logger),
	}
}

// Policy returns the tax policy used by the engine.
func (e *Engine) Policy() tax.Policy {
	return e.policy
}

// ProjectPlan projects input with a default engine.
func ProjectPlan(input plan.Input, opts Options) plan.Output {
	return NewEngine(nil, nil).Project(input, opts)
}

// loanYears is the per-year view of every loan in the plan.
type loanYears struct {
	all  map[int]loans.YearTotal
	home map[int]loans.YearTotal
}

// Project computes one YearResult per plan year. The input is not modified.
func (e *Engine) Project(input plan.Input, opts Options) plan.Output {
	settings := input.Settings
	if settings.HorizonYears <= 0 {
		e.logger.Debug("empty horizon, nothing to project",
			zap.String("op", "forecast.Project"),
			zap.Int("horizonYears", settings.HorizonYears),
		)
		return plan.Output{Results: []plan.YearResult{}}
	}

	e.logger.Info(fmt.Sprintf("projecting %d years from %d", settings.HorizonYears, settings.StartYear),
		zap.String("op", "forecast.Project"),
		zap.String("taxPolicy", e.policy.Name()),
		zap.Bool("includeTentative", opts.IncludeTentative),
	)

	loanTotals := e.amortizeLoans(input, opts.Overrides.HomeLoanPrepayment)
	investments := e.investments.Project(input.Investment, settings.HorizonYears)
	fixed, tentative := finance.SplitTentative(input.MonthlyExpenses)
	incomeYou := input.IncomeFor(constants.PersonYou)
	incomeWife := input.IncomeFor(constants.PersonWife)

	results := make([]plan.YearResult, 0, settings.HorizonYears)
	for i := 0; i < settings.HorizonYears; i++ {
		year := settings.StartYear + i
		r := plan.YearResult{Year: year}

		r.IncomeYou = finance.AnnualIncome(incomeYou, i, opts.Overrides.GrowthRatesFor(constants.PersonYou))
		r.IncomeWife = finance.AnnualIncome(incomeWife, i, opts.Overrides.GrowthRatesFor(constants.PersonWife))
		r.TotalIncome = r.IncomeYou + r.IncomeWife

		r.TaxYou = e.policy.Tax(r.IncomeYou)
		r.TaxWife = e.policy.Tax(r.IncomeWife)
		r.TotalTax = r.TaxYou + r.TaxWife
		r.FinalIncomeYou = r.IncomeYou - r.TaxYou
		r.FinalIncomeWife = r.IncomeWife - r.TaxWife
		r.TotalFinalIncome = r.FinalIncomeYou + r.FinalIncomeWife

		r.FixedAnnual = finance.AnnualMonthlyExpenses(fixed, i, settings.InflationRate)
		if opts.IncludeTentative {
			r.TentativeAnnual = finance.AnnualMonthlyExpenses(tentative, i, settings.InflationRate)
		}
		r.BigAnnual = e.expenses.BigExpensesForYear(input.BigExpenses, year, settings.StartYear, settings.InflationRate)

		lt := loanTotals.all[year]
		r.LoanInterest = lt.Interest
		r.LoanPrincipal = lt.Principal
		r.LoansTotal = r.LoanInterest + r.LoanPrincipal

		inv := investments[i]
		r.InvestmentContrib = inv.Contribution
		r.CorpusEnd = inv.CorpusEnd

		r.NetSavings = r.TotalFinalIncome - (r.FixedAnnual + r.TentativeAnnual + r.BigAnnual + r.LoansTotal + r.InvestmentContrib)

		if home, ok := loanTotals.home[year]; ok {
			r.HomeLoanEMI = home.Payments()
			r.HomeLoanPendingPrincipal = home.EndBalance
			r.HomeLoanPrepayment = home.Prepayment
		}

		if r.NetSavings < 0 {
			e.logger.Warn(fmt.Sprintf("negative net savings in %d", year),
				zap.String("op", "forecast.Project"),
				zap.Float64("netSavings", r.NetSavings),
			)
		}
		results = append(results, r)
	}

	return plan.Output{Results: results}
}

// amortizeLoans amortizes every loan once, applying prepayments to the home
// loan only, and sums the schedules per calendar year.
func (e *Engine) amortizeLoans(input plan.Input, prepayments []float64) loanYears {
	out := loanYears{all: make(map[int]loans.YearTotal)}
	homeIdx, hasHome := input.HomeLoanIndex()

	for i, loan := range input.Loans {
		var prepay *loans.Prepayments
		if hasHome && i == homeIdx {
			prepay = &loans.Prepayments{PlanStartYear: input.Settings.StartYear, Amounts: prepayments}
		}

		totals := loans.YearlyTotals(e.schedules.GenerateSchedule(loan.Terms(), prepay))
		for year, t := range totals {
			sum := out.all[year]
			sum.Interest += t.Interest
			sum.Principal += t.Principal
			sum.Prepayment += t.Prepayment
			sum.Months += t.Months
			out.all[year] = sum
		}
		if prepay != nil {
			out.home = totals
			e.logger.Debug(fmt.Sprintf("home loan %s", loan.Name),
				zap.String("op", "forecast.amortizeLoans"),
				zap.Int("scheduleYears", len(totals)),
			)
		}
	}

	return out
}
