package finance

import (
	"fmt"

	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/mathutil"
	"go.uber.org/zap"
)

// ExpenseProcessor aggregates expenses into yearly totals.
type ExpenseProcessor struct {
	logger *zap.Logger
}

// NewExpenseProcessor creates a new expense processor with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewExpenseProcessor(logger *zap.Logger) *ExpenseProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseProcessor{logger: logger}
}

// AnnualMonthlyExpenses sums twelve months of each expense, inflating the
// inflation-linked ones by yearIndex years.
func AnnualMonthlyExpenses(expenses []MonthlyExpense, yearIndex int, inflationRate float64) float64 {
	factor := mathutil.Compound(inflationRate, yearIndex)
	total := 0.0
	for _, exp := range expenses {
		annual := exp.AmountMonthly * constants.MonthsPerYear
		if exp.InflationLinked {
			annual *= factor
		}
		total += annual
	}
	return total
}

// FirstOccurrence resolves the calendar year a big expense first falls in.
func FirstOccurrence(exp BigExpense, startYear int) int {
	if exp.Year >= constants.AbsoluteYearThreshold {
		return exp.Year
	}
	return startYear + exp.Year
}

// Occurs reports whether a big expense falls in calendarYear.
func Occurs(exp BigExpense, calendarYear, startYear int) bool {
	first := FirstOccurrence(exp, startYear)
	if calendarYear < first {
		return false
	}
	if exp.RecurrenceYears <= 0 {
		return calendarYear == first
	}
	return (calendarYear-first)%exp.RecurrenceYears == 0
}

// AnnualBigExpenses sums the big expenses that occur in calendarYear.
// Inflation-linked amounts grow from their first occurrence.
func AnnualBigExpenses(expenses []BigExpense, calendarYear, startYear int, inflationRate float64) float64 {
	return NewExpenseProcessor(nil).BigExpensesForYear(expenses, calendarYear, startYear, inflationRate)
}

// BigExpensesForYear is AnnualBigExpenses with a debug log per matching expense.
func (ep *ExpenseProcessor) BigExpensesForYear(expenses []BigExpense, calendarYear, startYear int, inflationRate float64) float64 {
	total := 0.0
	for _, exp := range expenses {
		if !Occurs(exp, calendarYear, startYear) {
			continue
		}
		amount := exp.Amount
		if exp.InflationLinked {
			amount *= mathutil.Compound(inflationRate, calendarYear-FirstOccurrence(exp, startYear))
		}
		ep.logger.Debug(fmt.Sprintf("big expense %s active in %d", exp.Name, calendarYear),
			zap.String("op", "finance.ExpenseProcessor.BigExpensesForYear"),
			zap.Float64("amount", amount),
		)
		total += amount
	}
	return total
}

// SplitTentative separates confirmed expenses from tentative ones.
func SplitTentative(expenses []MonthlyExpense) (fixed, tentative []MonthlyExpense) {
	for _, exp := range expenses {
		if exp.Tentative {
			tentative = append(tentative, exp)
		} else {
			fixed = append(fixed, exp)
		}
	}
	return fixed, tentative
}

// OccurrenceYears lists the calendar years in [startYear, endYear] in which
// a big expense falls.
func OccurrenceYears(exp BigExpense, startYear, endYear int) []int {
	var years []int
	for y := startYear; y <= endYear; y++ {
		if Occurs(exp, y, startYear) {
			years = append(years, y)
		}
	}
	return years
}
