// Package optimizer searches for the largest uniform yearly home loan
// prepayment a plan can afford.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/household-plan/internal/config"
	"github.com/iwvelando/household-plan/internal/forecast"
	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/format"
	"github.com/iwvelando/household-plan/pkg/loans"
	"github.com/iwvelando/household-plan/pkg/mathutil"
	"github.com/iwvelando/household-plan/pkg/optimization"
	"go.uber.org/zap"
)

const (
	scopeHomeLoan       = "homeLoan"
	fieldHomePrepayment = "homeLoanPrepayment"
)

// Runner evaluates candidate prepayments against the projection engine.
type Runner struct {
	logger *zap.Logger
	engine *forecast.Engine
	conf   config.OptimizerConfig
}

// evaluation is the outcome of projecting one candidate prepayment.
type evaluation struct {
	value        float64
	minSavings   float64
	tightestYear int
	floor        float64
	interest     float64
	output       plan.Output
}

func (e evaluation) feasible() bool {
	return e.minSavings >= e.floor
}

func (e evaluation) headroom() float64 {
	return e.minSavings - e.floor
}

// Result holds the search summary and the projection at the chosen value.
type Result struct {
	Summary   optimization.Summary
	Overrides plan.Overrides
	Output    plan.Output
}

// NewRunner constructs a Runner. A nil engine uses the default tax policy.
func NewRunner(logger *zap.Logger, engine *forecast.Engine, conf *config.OptimizerConfig) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("optimizer configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = forecast.NewEngine(logger, nil)
	}

	c := *conf
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Runner{logger: logger, engine: engine, conf: c}, nil
}

// Run finds the largest amount that, prepaid every January of the plan, keeps
// each year's net savings minus the prepayment actually applied at or above
// the configured floor. Growth overrides in opts are kept; any prepayment
// schedule in opts is replaced.
func (r *Runner) Run(input plan.Input, opts forecast.Options) (*Result, error) {
	home := input.HomeLoan()
	if home == nil {
		return nil, fmt.Errorf("optimizer: plan has no home loan (name a loan with %q or set primaryResidence)", "home")
	}
	if input.Settings.HorizonYears < 1 {
		return nil, fmt.Errorf("optimizer: plan horizon must be at least one year")
	}

	maxVal := r.conf.Max
	if maxVal <= 0 {
		maxVal = home.Principal
	}
	floor := r.conf.Floor

	lowerEval := r.evaluate(input, opts, 0, floor)
	summary := optimization.Summary{
		Scope:      scopeHomeLoan,
		TargetName: home.Name,
		Field:      fieldHomePrepayment,
		Original:   uniformValue(opts.Overrides.HomeLoanPrepayment),
		Max:        maxVal,
		Floor:      floor,
	}

	if !lowerEval.feasible() {
		note := fmt.Sprintf("net savings fall to %s in %d, below the floor %s, even without prepayments",
			r.money(input, lowerEval.minSavings), lowerEval.tightestYear, r.money(input, floor))
		return r.finish(input, opts, summary, lowerEval, lowerEval, 0, false, note), nil
	}

	upperEval := r.evaluate(input, opts, maxVal, floor)
	if upperEval.feasible() {
		return r.finish(input, opts, summary, upperEval, lowerEval, 0, true, ""), nil
	}

	iterations := 0
	best := lowerEval
	lower, upper := 0.0, maxVal
	for iterations < r.conf.MaxIterations && !mathutil.WithinTolerance(upper, lower, r.conf.Tolerance) {
		mid := lower + (upper-lower)/2
		evalMid := r.evaluate(input, opts, mid, floor)
		iterations++
		if evalMid.feasible() {
			best = evalMid
			lower = mid
		} else {
			upper = mid
		}
	}

	converged := mathutil.WithinTolerance(upper, lower, r.conf.Tolerance)
	note := ""
	if !converged {
		note = fmt.Sprintf("stopped after %d iterations with the feasible range %s to %s",
			iterations, r.money(input, lower), r.money(input, upper))
	}
	return r.finish(input, opts, summary, best, lowerEval, iterations, converged, note), nil
}

func (r *Runner) finish(input plan.Input, opts forecast.Options, summary optimization.Summary, chosen, baseline evaluation, iterations int, converged bool, note string) *Result {
	summary.Value = chosen.value
	summary.ValueDisplay = r.money(input, chosen.value)
	summary.MinimumSavings = chosen.minSavings
	summary.TightestYear = chosen.tightestYear
	summary.Headroom = chosen.headroom()
	summary.Iterations = iterations
	summary.Converged = converged
	summary.InterestSaved = baseline.interest - chosen.interest
	if note != "" {
		summary.Notes = append(summary.Notes, note)
	}

	r.logger.Info(fmt.Sprintf("optimizer chose yearly prepayment %s for %s", summary.ValueDisplay, summary.TargetName),
		zap.String("op", "optimizer.Run"),
		zap.Float64("floor", summary.Floor),
		zap.Float64("max", summary.Max),
		zap.Float64("minimumSavings", summary.MinimumSavings),
		zap.Int("tightestYear", summary.TightestYear),
		zap.Float64("headroom", summary.Headroom),
		zap.Float64("interestSaved", summary.InterestSaved),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)

	return &Result{
		Summary:   summary,
		Overrides: withPrepayment(input, opts.Overrides, chosen.value),
		Output:    chosen.output,
	}
}

// evaluate projects the plan with amount prepaid every year and records the
// tightest year. Interest covers the home loan's whole life, not only the
// projected years.
func (r *Runner) evaluate(input plan.Input, opts forecast.Options, amount, floor float64) evaluation {
	candidate := opts
	candidate.Overrides = withPrepayment(input, opts.Overrides, amount)
	out := r.engine.Project(input, candidate)

	eval := evaluation{value: amount, floor: floor, minSavings: math.Inf(1), output: out}
	if home := input.HomeLoan(); home != nil {
		prepay := &loans.Prepayments{PlanStartYear: input.Settings.StartYear, Amounts: candidate.Overrides.HomeLoanPrepayment}
		eval.interest = loans.TotalInterest(loans.Amortize(home.Terms(), prepay))
	}
	for _, res := range out.Results {
		available := res.NetSavings - res.HomeLoanPrepayment
		if available < eval.minSavings {
			eval.minSavings = available
			eval.tightestYear = res.Year
		}
	}
	if len(out.Results) == 0 {
		eval.minSavings = 0
	}

	r.logger.Debug(fmt.Sprintf("evaluated prepayment %.2f", amount),
		zap.String("op", "optimizer.evaluate"),
		zap.Float64("minimumSavings", eval.minSavings),
		zap.Int("tightestYear", eval.tightestYear),
		zap.Bool("feasible", eval.feasible()),
	)
	return eval
}

func (r *Runner) money(input plan.Input, amount float64) string {
	return format.Currency(amount, input.Settings.Currency, "")
}

// withPrepayment returns a copy of the overrides with amount prepaid in
// every plan year.
func withPrepayment(input plan.Input, overrides plan.Overrides, amount float64) plan.Overrides {
	schedule := make([]float64, input.Settings.HorizonYears)
	for i := range schedule {
		schedule[i] = amount
	}
	return plan.Overrides{
		GrowthRatesYou:     overrides.GrowthRatesYou,
		GrowthRatesWife:    overrides.GrowthRatesWife,
		HomeLoanPrepayment: schedule,
	}
}

// uniformValue returns the common value of a schedule, or 0 when the
// entries differ or the schedule is empty.
func uniformValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return 0
		}
	}
	return values[0]
}
