package finance

import (
	"fmt"

	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/mathutil"
	"go.uber.org/zap"
)

// YearInvestment captures one plan year of investment activity.
type YearInvestment struct {
	Contribution float64 `json:"investmentContrib"`
	CorpusEnd    float64 `json:"corpusEnd"`
}

// InvestmentProcessor handles monthly investment computations.
type InvestmentProcessor struct {
	logger *zap.Logger
}

// NewInvestmentProcessor creates a processor for investment calculations.
func NewInvestmentProcessor(logger *zap.Logger) *InvestmentProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestmentProcessor{logger: logger}
}

// ProjectInvestment projects the corpus without logging.
func ProjectInvestment(plan Investment, horizonYears int) []YearInvestment {
	return NewInvestmentProcessor(nil).Project(plan, horizonYears)
}

// Project returns one entry per plan year. Each month's deposit is added
// before that month's return is applied, and the monthly deposit grows by
// ContributionGrowthRate once per year. The corpus carries across years.
func (ip *InvestmentProcessor) Project(plan Investment, horizonYears int) []YearInvestment {
	if horizonYears <= 0 {
		return nil
	}

	baseMonthly := plan.BaseMonthly()
	monthlyRate := mathutil.MonthlyRate(plan.ExpectedAnnualReturn)
	corpus := plan.CurrentCorpus
	results := make([]YearInvestment, 0, horizonYears)

	for y := 0; y < horizonYears; y++ {
		effectiveMonthly := baseMonthly * mathutil.Compound(plan.ContributionGrowthRate, y)
		contribution := 0.0
		for m := 0; m < constants.MonthsPerYear; m++ {
			corpus += effectiveMonthly
			contribution += effectiveMonthly
			corpus *= 1 + monthlyRate
		}

		ip.logger.Debug(fmt.Sprintf("investment year %d: contributed %.2f, corpus %.2f", y, contribution, corpus),
			zap.String("op", "finance.InvestmentProcessor.Project"),
			zap.Float64("effectiveMonthly", effectiveMonthly),
		)
		results = append(results, YearInvestment{Contribution: contribution, CorpusEnd: corpus})
	}

	return results
}
