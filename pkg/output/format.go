// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"strconv"

	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/constants"
)

// Report is everything a formatter needs to render a projection.
type Report struct {
	Output    plan.Output
	Overrides plan.Overrides
	Currency  string
	Grouping  string
}

// NewReport builds a report with the default currency and grouping.
func NewReport(out plan.Output, overrides plan.Overrides) *Report {
	return &Report{
		Output:    out,
		Overrides: overrides,
		Currency:  constants.DefaultCurrency,
		Grouping:  constants.GroupingInternational,
	}
}

// Years returns the projected calendar years in order.
func (r *Report) Years() []int {
	years := make([]int, len(r.Output.Results))
	for i, res := range r.Output.Results {
		years[i] = res.Year
	}
	return years
}

// RowKind distinguishes headings from value rows.
type RowKind int

const (
	RowGroup RowKind = iota
	RowSubgroup
	RowAmount
	RowRate
)

// Cell is one year's value in a row. Empty cells render blank.
type Cell struct {
	Value float64
	Empty bool
}

// Row is one line of the transposed Metric-by-year table.
type Row struct {
	Metric string
	Kind   RowKind
	Cells  []Cell
}

// IsHeading reports whether the row is a group or subgroup title.
func (row Row) IsHeading() bool {
	return row.Kind == RowGroup || row.Kind == RowSubgroup
}

// Rows lays out the projection as grouped metric rows with one cell per
// year. Growth rate rows are empty for the first year, which has no
// preceding transition.
func (r *Report) Rows() []Row {
	results := r.Output.Results
	amount := func(metric string, get func(plan.YearResult) float64) Row {
		row := Row{Metric: metric, Kind: RowAmount, Cells: make([]Cell, len(results))}
		for i, res := range results {
			row.Cells[i] = Cell{Value: get(res)}
		}
		return row
	}
	heading := func(metric string, kind RowKind) Row {
		row := Row{Metric: metric, Kind: kind, Cells: make([]Cell, len(results))}
		for i := range row.Cells {
			row.Cells[i] = Cell{Empty: true}
		}
		return row
	}

	rows := []Row{
		heading("1. Income", RowGroup),
		amount("Income - You (Gross)", func(y plan.YearResult) float64 { return y.IncomeYou }),
		amount("Income - Wife (Gross)", func(y plan.YearResult) float64 { return y.IncomeWife }),
		amount("Total Income (Gross)", func(y plan.YearResult) float64 { return y.TotalIncome }),
		amount("Tax - You", func(y plan.YearResult) float64 { return y.TaxYou }),
		amount("Tax - Wife", func(y plan.YearResult) float64 { return y.TaxWife }),
		amount("Total Tax", func(y plan.YearResult) float64 { return y.TotalTax }),
		amount("Final Income - You (After Tax)", func(y plan.YearResult) float64 { return y.FinalIncomeYou }),
		amount("Final Income - Wife (After Tax)", func(y plan.YearResult) float64 { return y.FinalIncomeWife }),
		amount("Total Final Income (After Tax)", func(y plan.YearResult) float64 { return y.TotalFinalIncome }),
		r.rateRow("Growth Rate - You (%)", r.Overrides.GrowthRatesYou),
		r.rateRow("Growth Rate - Wife (%)", r.Overrides.GrowthRatesWife),

		heading("2. All Expenses", RowGroup),
		amount("Fixed Annual Expenses", func(y plan.YearResult) float64 { return y.FixedAnnual }),
		amount("Tentative Annual Expenses", func(y plan.YearResult) float64 { return y.TentativeAnnual }),
		amount("Big Annual Expenses", func(y plan.YearResult) float64 { return y.BigAnnual }),
		amount("Loan Interest", func(y plan.YearResult) float64 { return y.LoanInterest }),
		amount("Loan Principal", func(y plan.YearResult) float64 { return y.LoanPrincipal }),
		amount("Total Loans", func(y plan.YearResult) float64 { return y.LoansTotal }),
		heading("2.a Home Loan", RowSubgroup),
		amount("Home Loan Yearly EMI", func(y plan.YearResult) float64 { return y.HomeLoanEMI }),
		amount("Home Loan Pending Principal", func(y plan.YearResult) float64 { return y.HomeLoanPendingPrincipal }),
	}

	if r.hasPrepayments() {
		rows = append(rows, amount("Home Loan Prepayment", func(y plan.YearResult) float64 { return y.HomeLoanPrepayment }))
	}

	rows = append(rows,
		heading("3. Investment", RowGroup),
		amount("Investment Contribution", func(y plan.YearResult) float64 { return y.InvestmentContrib }),
		amount("Investment Corpus (End of Year)", func(y plan.YearResult) float64 { return y.CorpusEnd }),

		heading("4. Total Expenses", RowGroup),
		amount("Total Expenses", func(y plan.YearResult) float64 { return y.TotalExpenses() }),

		heading("5. Total Savings", RowGroup),
		amount("Total Savings (Net Savings)", func(y plan.YearResult) float64 { return y.NetSavings }),

		heading("6. Corpus at the end of the year", RowGroup),
		amount("Corpus at End of Year", func(y plan.YearResult) float64 { return y.CorpusEnd }),
	)

	return rows
}

// rateRow places rates[j] under the year after transition j.
func (r *Report) rateRow(metric string, rates []float64) Row {
	results := r.Output.Results
	row := Row{Metric: metric, Kind: RowRate, Cells: make([]Cell, len(results))}
	if len(results) == 0 {
		return row
	}
	start := results[0].Year
	for i, res := range results {
		idx := res.Year - start - 1
		if idx < 0 || idx >= len(rates) {
			row.Cells[i] = Cell{Empty: true}
			continue
		}
		row.Cells[i] = Cell{Value: rates[idx]}
	}
	return row
}

func (r *Report) hasPrepayments() bool {
	for _, res := range r.Output.Results {
		if res.HomeLoanPrepayment > 0 {
			return true
		}
	}
	return false
}

func yearHeaders(years []int) []string {
	headers := make([]string, 0, len(years)+1)
	headers = append(headers, "Metric")
	for _, y := range years {
		headers = append(headers, strconv.Itoa(y))
	}
	return headers
}
