package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrEmptyCSV is returned when a CSV plan has no header row.
var ErrEmptyCSV = errors.New("CSV is empty")

// Row types recognised in the type column.
const (
	rowSettings       = "settings"
	rowIncome         = "income"
	rowMonthlyExpense = "monthlyexpense"
	rowBigExpense     = "bigexpense"
	rowLoan           = "loan"
	rowInvestment     = "investment"
	rowSIP            = "sip"
)

// CSVHeaders is the template column order. Row types use a subset each.
var CSVHeaders = []string{
	"type", "name", "person",
	"baseAmount", "baseIsMonthly", "annualGrowthRate", "bonusAnnual", "stocksAnnual", "rsusAnnual",
	"amountMonthly", "inflationLinked", "tentative",
	"amount", "year", "recurrenceYears",
	"principal", "apr", "tenureMonths", "startYear", "startMonth", "primaryResidence",
	"currentCorpus", "monthlyContribution", "expectedAnnualReturn", "contributionGrowthRate",
	"currency", "startYearSettings", "horizonYears", "sipName", "sipAmountMonthly", "inflationRate",
}

// csvRow resolves columns by case-insensitive header name.
type csvRow struct {
	line    int
	columns map[string]int
	values  []string
}

func (r csvRow) get(key string) string {
	idx, ok := r.columns[strings.ToLower(key)]
	if !ok || idx >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[idx])
}

// first returns the first non-empty value among the aliases.
func (r csvRow) first(keys ...string) (string, string) {
	for _, k := range keys {
		if v := r.get(k); v != "" {
			return k, v
		}
	}
	return "", ""
}

func (r csvRow) str(def string, keys ...string) string {
	if _, v := r.first(keys...); v != "" {
		return v
	}
	return def
}

func (r csvRow) num(def float64, keys ...string) (float64, error) {
	key, v := r.first(keys...)
	if v == "" {
		return def, nil
	}
	n, err := parseNumber(v)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", r.line, key, err)
	}
	return n, nil
}

func (r csvRow) integer(def int, keys ...string) (int, error) {
	key, v := r.first(keys...)
	if v == "" {
		return def, nil
	}
	n, err := parseInteger(v)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: %w", r.line, key, err)
	}
	return n, nil
}

func (r csvRow) boolean(def bool, keys ...string) bool {
	if _, v := r.first(keys...); v != "" {
		return parseBool(v)
	}
	return def
}

// ParseCSV reads the type-column CSV format. Every row carries a type
// (settings, income, monthlyExpense, bigExpense, loan, investment or sip)
// and fills only the columns that type uses. Unknown types are skipped.
func (im *Importer) ParseCSV(r io.Reader) (plan.Input, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return plan.Input{}, ErrEmptyCSV
	}
	if err != nil {
		return plan.Input{}, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}

	in := defaultInput(im.currentYear())
	var incomes []plan.Income

	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return plan.Input{}, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		row := csvRow{line: line, columns: columns, values: values}

		kind := strings.ToLower(row.get("type"))
		if kind == "" {
			continue
		}

		switch kind {
		case rowSettings:
			err = im.applySettings(&in, row)
		case rowIncome:
			var inc plan.Income
			inc, err = parseIncome(row)
			incomes = append(incomes, inc)
		case rowMonthlyExpense:
			var exp plan.MonthlyExpense
			exp, err = parseMonthlyExpense(row)
			in.MonthlyExpenses = append(in.MonthlyExpenses, exp)
		case rowBigExpense:
			var exp plan.BigExpense
			exp, err = parseBigExpense(row)
			in.BigExpenses = append(in.BigExpenses, exp)
		case rowLoan:
			var l plan.Loan
			l, err = parseLoan(row, im.currentYear())
			in.Loans = append(in.Loans, l)
		case rowInvestment:
			err = parseInvestment(&in.Investment, row)
		case rowSIP:
			var amount float64
			amount, err = row.num(0, "sipAmountMonthly", "amountMonthly", "amount")
			in.Investment.SIPs = append(in.Investment.SIPs, plan.SIP{
				Name:          row.str("SIP", "sipName", "name"),
				AmountMonthly: amount,
			})
		default:
			im.logger.Debug(fmt.Sprintf("ignoring CSV row of unknown type %q", kind),
				zap.String("op", "importer.ParseCSV"),
				zap.Int("line", line),
			)
		}
		if err != nil {
			return plan.Input{}, err
		}
	}

	in.Incomes = normalizeIncomes(incomes)
	return in, nil
}

func (im *Importer) applySettings(in *plan.Input, row csvRow) error {
	var err error
	if in.Settings.StartYear, err = row.integer(im.currentYear(), "startYearSettings", "startYear"); err != nil {
		return err
	}
	horizon, err := row.integer(constants.DefaultHorizonYears, "horizonYears", "horizon", "years")
	if err != nil {
		return err
	}
	in.Settings.HorizonYears = max(1, horizon)
	in.Settings.Currency = row.str(constants.DefaultCurrency, "currency")
	in.Settings.InflationRate, err = row.num(constants.DefaultInflationRate, "inflationRate", "inflation")
	return err
}

func parseIncome(row csvRow) (plan.Income, error) {
	inc := plan.Income{Person: constants.PersonYou}
	if strings.ToLower(row.str(constants.PersonYou, "person")) == constants.PersonWife {
		inc.Person = constants.PersonWife
	}

	inc.BaseIsMonthly = row.boolean(true, "baseIsMonthly", "isMonthly", "frequencyMonthly")
	switch strings.ToLower(row.get("frequency")) {
	case "monthly":
		inc.BaseIsMonthly = true
	case "annual", "yearly":
		inc.BaseIsMonthly = false
	}

	var err error
	if inc.BaseAmount, err = row.num(0, "baseAmount", "base", "amount"); err != nil {
		return inc, err
	}
	if inc.AnnualGrowthRate, err = row.num(constants.DefaultAnnualGrowthRate, "annualGrowthRate", "growth", "growthRate"); err != nil {
		return inc, err
	}
	if inc.BonusAnnual, err = row.num(0, "bonusAnnual", "bonus"); err != nil {
		return inc, err
	}
	if inc.StocksAnnual, err = row.num(0, "stocksAnnual", "stocks"); err != nil {
		return inc, err
	}
	inc.RSUsAnnual, err = row.num(0, "rsusAnnual", "rsus")
	return inc, err
}

func parseMonthlyExpense(row csvRow) (plan.MonthlyExpense, error) {
	amount, err := row.num(0, "amountMonthly", "amount")
	return plan.MonthlyExpense{
		Name:            row.str("Expense", "name"),
		AmountMonthly:   amount,
		InflationLinked: row.boolean(true, "inflationLinked"),
		Tentative:       row.boolean(false, "tentative"),
	}, err
}

func parseBigExpense(row csvRow) (plan.BigExpense, error) {
	exp := plan.BigExpense{
		Name:            row.str("Big Expense", "name"),
		InflationLinked: row.boolean(true, "inflationLinked"),
	}
	var err error
	if exp.Amount, err = row.num(0, "amount"); err != nil {
		return exp, err
	}
	year, err := row.integer(0, "year")
	if err != nil {
		return exp, err
	}
	exp.Year = max(0, year)

	// A blank or unparseable recurrence means a one-off expense.
	if _, raw := row.first("recurrenceYears", "recurrence", "repeatEveryYears"); raw != "" {
		if n, err := parseInteger(raw); err == nil && n > 0 {
			exp.RecurrenceYears = n
		}
	}
	return exp, nil
}

func parseLoan(row csvRow, currentYear int) (plan.Loan, error) {
	l := plan.Loan{
		Name:             row.str("Loan", "name"),
		PrimaryResidence: row.boolean(false, "primaryResidence", "isHomeLoan"),
	}
	var err error
	if l.Principal, err = row.num(0, "principal", "amount"); err != nil {
		return l, err
	}
	if l.APR, err = row.num(0, "apr", "interestRate", "roi"); err != nil {
		return l, err
	}
	tenure, err := row.integer(0, "tenureMonths", "months", "tenure")
	if err != nil {
		return l, err
	}
	l.TenureMonths = max(0, tenure)
	start, err := row.integer(currentYear, "startYear", "loanStartYear")
	if err != nil {
		return l, err
	}
	l.StartYear = max(0, start)
	month, err := row.integer(constants.DefaultStartMonth, "startMonth", "loanStartMonth")
	if err != nil {
		return l, err
	}
	l.StartMonth = min(12, max(1, month))
	return l, nil
}

func parseInvestment(inv *plan.Investment, row csvRow) error {
	var err error
	if inv.CurrentCorpus, err = row.num(0, "currentCorpus", "corpus"); err != nil {
		return err
	}
	if inv.MonthlyContribution, err = row.num(0, "monthlyContribution", "monthlyInvest", "otherMonthly"); err != nil {
		return err
	}
	if inv.ExpectedAnnualReturn, err = row.num(constants.DefaultExpectedAnnualReturn, "expectedAnnualReturn", "expectedReturn", "return"); err != nil {
		return err
	}
	inv.ContributionGrowthRate, err = row.num(0, "contributionGrowthRate", "investGrowth", "contributionGrowth")
	return err
}

// normalizeIncomes keeps the first income for each person and falls back to
// an empty salary for "you" when none was supplied.
func normalizeIncomes(incomes []plan.Income) []plan.Income {
	var out []plan.Income
	for _, person := range []string{constants.PersonYou, constants.PersonWife} {
		for _, inc := range incomes {
			if inc.Person == person {
				out = append(out, inc)
				break
			}
		}
	}
	if len(out) == 0 {
		out = []plan.Income{defaultIncome()}
	}
	return out
}

func defaultIncome() plan.Income {
	return plan.Income{
		Person:           constants.PersonYou,
		BaseIsMonthly:    true,
		AnnualGrowthRate: constants.DefaultAnnualGrowthRate,
	}
}

func defaultInput(currentYear int) plan.Input {
	return plan.Input{
		Settings: plan.Settings{
			StartYear:     currentYear,
			HorizonYears:  constants.DefaultHorizonYears,
			Currency:      constants.DefaultCurrency,
			InflationRate: constants.DefaultInflationRate,
		},
		MonthlyExpenses: []plan.MonthlyExpense{},
		BigExpenses:     []plan.BigExpense{},
		Investment:      plan.Investment{ExpectedAnnualReturn: constants.DefaultExpectedAnnualReturn},
		Loans:           []plan.Loan{},
	}
}

var numberNoise = strings.NewReplacer(",", "", "_", "", " ", "", "\u00a0", "", "%", "",
	"₹", "", "$", "", "€", "", "£", "", "¥", "")

// parseNumber accepts plain or display-formatted numbers such as
// "₹1,23,456.78" or "7.5%".
func parseNumber(raw string) (float64, error) {
	cleaned := numberNoise.Replace(strings.TrimSpace(raw))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	f, _ := d.Float64()
	return f, nil
}

// parseInteger truncates any fractional part.
func parseInteger(raw string) (int, error) {
	cleaned := numberNoise.Replace(strings.TrimSpace(raw))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return int(d.IntPart()), nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
