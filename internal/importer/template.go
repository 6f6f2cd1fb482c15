package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/constants"
	"gopkg.in/yaml.v3"
)

// TemplatePlan returns a small but complete example plan starting in
// startYear.
func TemplatePlan(startYear int) plan.Input {
	return plan.Input{
		Settings: plan.Settings{
			StartYear:     startYear,
			HorizonYears:  constants.DefaultHorizonYears,
			Currency:      constants.DefaultCurrency,
			InflationRate: constants.DefaultInflationRate,
		},
		Incomes: []plan.Income{
			{Person: constants.PersonYou, BaseAmount: 150000, BaseIsMonthly: true, AnnualGrowthRate: 7, BonusAnnual: 100000},
			{Person: constants.PersonWife, BaseAmount: 100000, BaseIsMonthly: true, AnnualGrowthRate: 7, BonusAnnual: 50000},
		},
		MonthlyExpenses: []plan.MonthlyExpense{
			{Name: "Grocery + Food", AmountMonthly: 30000, InflationLinked: true},
			{Name: "Gas + Travel", AmountMonthly: 15000, InflationLinked: true},
		},
		BigExpenses: []plan.BigExpense{
			{Name: "School Fees", Amount: 200000, Year: startYear + 1, RecurrenceYears: 1, InflationLinked: true},
		},
		Investment: plan.Investment{
			MonthlyContribution:  50000,
			ExpectedAnnualReturn: 10,
			SIPs: []plan.SIP{
				{Name: "SIP (you)", AmountMonthly: 25000},
				{Name: "SIP (wife)", AmountMonthly: 25000},
			},
		},
		Loans: []plan.Loan{
			{Name: "Home Loan", Principal: 5000000, APR: 8, TenureMonths: 240, StartYear: startYear, StartMonth: 1, PrimaryResidence: true},
		},
	}
}

// Template renders the example plan in csv, json or yaml.
func (im *Importer) Template(format string) ([]byte, error) {
	in := TemplatePlan(im.currentYear())
	switch format {
	case constants.OutputFormatCSV:
		return EncodeCSV(in)
	case constants.OutputFormatJSON, constants.OutputFormatYAML:
		return Encode(in, format)
	}
	return nil, fmt.Errorf("unsupported template format %q", format)
}

// Encode serializes a plan or overrides document as json or yaml.
func Encode(doc any, format string) ([]byte, error) {
	switch format {
	case constants.OutputFormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case constants.OutputFormatYAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("unsupported document format %q", format)
}

// EncodeCSV writes a plan in the type-column CSV layout read by ParseCSV.
func EncodeCSV(in plan.Input) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(CSVHeaders); err != nil {
		return nil, err
	}

	write := func(fields map[string]string) error {
		record := make([]string, len(CSVHeaders))
		for i, h := range CSVHeaders {
			record[i] = fields[h]
		}
		return w.Write(record)
	}

	rows := []map[string]string{{
		"type":              "settings",
		"currency":          in.Settings.Currency,
		"startYearSettings": strconv.Itoa(in.Settings.StartYear),
		"horizonYears":      strconv.Itoa(in.Settings.HorizonYears),
		"inflationRate":     num(in.Settings.InflationRate),
	}}
	for _, inc := range in.Incomes {
		rows = append(rows, map[string]string{
			"type":             "income",
			"person":           inc.Person,
			"baseAmount":       num(inc.BaseAmount),
			"baseIsMonthly":    strconv.FormatBool(inc.BaseIsMonthly),
			"annualGrowthRate": num(inc.AnnualGrowthRate),
			"bonusAnnual":      num(inc.BonusAnnual),
			"stocksAnnual":     num(inc.StocksAnnual),
			"rsusAnnual":       num(inc.RSUsAnnual),
		})
	}
	for _, exp := range in.MonthlyExpenses {
		rows = append(rows, map[string]string{
			"type":            "monthlyExpense",
			"name":            exp.Name,
			"amountMonthly":   num(exp.AmountMonthly),
			"inflationLinked": strconv.FormatBool(exp.InflationLinked),
			"tentative":       strconv.FormatBool(exp.Tentative),
		})
	}
	for _, exp := range in.BigExpenses {
		rows = append(rows, map[string]string{
			"type":            "bigExpense",
			"name":            exp.Name,
			"amount":          num(exp.Amount),
			"year":            strconv.Itoa(exp.Year),
			"recurrenceYears": strconv.Itoa(exp.RecurrenceYears),
			"inflationLinked": strconv.FormatBool(exp.InflationLinked),
		})
	}
	for _, l := range in.Loans {
		rows = append(rows, map[string]string{
			"type":             "loan",
			"name":             l.Name,
			"principal":        num(l.Principal),
			"apr":              num(l.APR),
			"tenureMonths":     strconv.Itoa(l.TenureMonths),
			"startYear":        strconv.Itoa(l.StartYear),
			"startMonth":       strconv.Itoa(l.StartMonth),
			"primaryResidence": strconv.FormatBool(l.PrimaryResidence),
		})
	}
	inv := in.Investment
	rows = append(rows, map[string]string{
		"type":                   "investment",
		"currentCorpus":          num(inv.CurrentCorpus),
		"monthlyContribution":    num(inv.MonthlyContribution),
		"expectedAnnualReturn":   num(inv.ExpectedAnnualReturn),
		"contributionGrowthRate": num(inv.ContributionGrowthRate),
	})
	for _, sip := range inv.SIPs {
		rows = append(rows, map[string]string{
			"type":             "sip",
			"sipName":          sip.Name,
			"sipAmountMonthly": num(sip.AmountMonthly),
		})
	}

	for _, row := range rows {
		if err := write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
