// Package loans provides loan amortization utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/household-plan/pkg/datetime"
	"github.com/iwvelando/household-plan/pkg/mathutil"
	"go.uber.org/zap"
)

// Terms holds the parameters of an amortizing loan.
type Terms struct {
	Name         string
	Principal    float64
	APR          float64 // percent
	TenureMonths int
	StartYear    int
	StartMonth   int // 1-12
}

// Prepayments is a yearly lump-sum schedule indexed by plan year. The amount
// at index i is applied in January of PlanStartYear+i.
type Prepayments struct {
	PlanStartYear int
	Amounts       []float64
}

// AmountFor returns the prepayment scheduled for the given calendar year, or 0.
func (p *Prepayments) AmountFor(year int) float64 {
	if p == nil {
		return 0
	}
	idx := year - p.PlanStartYear
	if idx < 0 || idx >= len(p.Amounts) {
		return 0
	}
	return mathutil.FloorZero(mathutil.Sanitize(p.Amounts[idx]))
}

// Entry is one month of an amortization schedule.
type Entry struct {
	MonthIndex int     `json:"monthIndex"` // 1-based
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Interest   float64 `json:"interest"`
	Principal  float64 `json:"principal"`
	Prepayment float64 `json:"prepayment"`
	Balance    float64 `json:"balance"`
}

// Payment returns the scheduled installment paid in the month.
func (e Entry) Payment() float64 {
	return e.Interest + e.Principal
}

// MonthlyPayment calculates the monthly payment (EMI) for a loan using the standard amortization formula.
func MonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 || principal <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return principal * periodicInterestRate * power / (power - 1.00)
}

// InterestFor calculates one month of interest on a balance.
func InterestFor(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// Amortize produces the month-by-month schedule for a loan without logging.
func Amortize(terms Terms, prepay *Prepayments) []Entry {
	return NewAmortizationScheduleGenerator(nil).GenerateSchedule(terms, prepay)
}

// GenerateSchedule walks the loan month by month from its start. In January,
// a scheduled prepayment is taken off the balance before that month's
// interest accrues. Each month then pays the full EMI, so the principal is
// EMI less interest and the balance is floored at zero. The schedule stops
// once the balance is cleared or the tenure elapses, so prepayments can
// shorten it.
func (g *AmortizationScheduleGenerator) GenerateSchedule(terms Terms, prepay *Prepayments) []Entry {
	if terms.TenureMonths <= 0 || terms.Principal <= 0 {
		g.logger.Debug(fmt.Sprintf("loan %s has no amortizable balance", terms.Name),
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("principal", terms.Principal),
			zap.Int("tenureMonths", terms.TenureMonths),
		)
		return nil
	}

	emi := MonthlyPayment(terms.Principal, terms.APR, terms.TenureMonths)
	balance := terms.Principal
	current := datetime.NewMonth(terms.StartYear, terms.StartMonth)
	schedule := make([]Entry, 0, terms.TenureMonths)

	for m := 1; m <= terms.TenureMonths && balance > 0; m++ {
		entry := Entry{MonthIndex: m, Year: current.Year, Month: int(current.Month)}

		if prepay != nil && current.IsJanuary() {
			if amount := prepay.AmountFor(current.Year); amount > 0 {
				applied := math.Min(amount, balance)
				balance = mathutil.FloorZero(balance - applied)
				entry.Prepayment = applied
				g.logger.Debug(fmt.Sprintf("%s: applying prepayment %.2f for loan %s", current, applied, terms.Name),
					zap.String("op", "loans.GenerateSchedule"),
					zap.Float64("requested", amount),
					zap.Float64("balance", balance),
				)
			}
		}

		entry.Interest = InterestFor(balance, terms.APR)
		entry.Principal = emi - entry.Interest
		balance -= entry.Principal
		if balance < 0 || mathutil.IsZero(balance) {
			balance = 0
		}
		entry.Balance = balance
		schedule = append(schedule, entry)
		current = current.Next()
	}

	if n := len(schedule); n > 0 && n < terms.TenureMonths {
		g.logger.Debug(fmt.Sprintf("loan %s paid off early at %s", terms.Name, PayoffMonth(schedule)),
			zap.String("op", "loans.GenerateSchedule"),
			zap.Int("months", n),
			zap.Int("tenureMonths", terms.TenureMonths),
		)
	}

	return schedule
}

// YearTotal aggregates a schedule over one calendar year.
type YearTotal struct {
	Interest   float64
	Principal  float64
	Prepayment float64
	EndBalance float64 // balance after the year's last amortized month
	Months     int
}

// Payments returns interest plus principal paid in the year.
func (y YearTotal) Payments() float64 {
	return y.Interest + y.Principal
}

// YearlyTotals groups a schedule by calendar year.
func YearlyTotals(schedule []Entry) map[int]YearTotal {
	totals := make(map[int]YearTotal)
	for _, entry := range schedule {
		t := totals[entry.Year]
		t.Interest += entry.Interest
		t.Principal += entry.Principal
		t.Prepayment += entry.Prepayment
		t.EndBalance = entry.Balance
		t.Months++
		totals[entry.Year] = t
	}
	return totals
}

// PayoffMonth returns the month of the last schedule entry.
func PayoffMonth(schedule []Entry) datetime.Month {
	if len(schedule) == 0 {
		return datetime.Month{}
	}
	last := schedule[len(schedule)-1]
	return datetime.NewMonth(last.Year, last.Month)
}

// MaturityMonth returns the month of the final scheduled installment when no
// prepayments are made.
func MaturityMonth(terms Terms) datetime.Month {
	return datetime.NewMonth(terms.StartYear, terms.StartMonth).Offset(terms.TenureMonths - 1)
}

// TotalInterest sums the interest paid over a schedule.
func TotalInterest(schedule []Entry) float64 {
	total := 0.0
	for _, entry := range schedule {
		total += entry.Interest
	}
	return total
}
