package importer

import (
	"fmt"
	"io"

	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/spf13/viper"
)

// Raw document shapes. Pointer fields distinguish an omitted value, which
// takes the schema default, from an explicit zero.
type rawDocument struct {
	Settings        rawSettings         `mapstructure:"settings"`
	Incomes         []rawIncome         `mapstructure:"incomes"`
	MonthlyExpenses []rawMonthlyExpense `mapstructure:"monthlyExpenses"`
	BigExpenses     []rawBigExpense     `mapstructure:"bigExpenses"`
	Investment      rawInvestment       `mapstructure:"investment"`
	Loans           []rawLoan           `mapstructure:"loans"`
}

type rawSettings struct {
	StartYear     *int     `mapstructure:"startYear"`
	HorizonYears  *int     `mapstructure:"horizonYears"`
	Currency      *string  `mapstructure:"currency"`
	InflationRate *float64 `mapstructure:"inflationRate"`
}

type rawIncome struct {
	Person           string   `mapstructure:"person"`
	BaseAmount       float64  `mapstructure:"baseAmount"`
	BaseIsMonthly    *bool    `mapstructure:"baseIsMonthly"`
	AnnualGrowthRate *float64 `mapstructure:"annualGrowthRate"`
	BonusAnnual      float64  `mapstructure:"bonusAnnual"`
	StocksAnnual     float64  `mapstructure:"stocksAnnual"`
	RSUsAnnual       float64  `mapstructure:"rsusAnnual"`
}

type rawMonthlyExpense struct {
	Name            string  `mapstructure:"name"`
	AmountMonthly   float64 `mapstructure:"amountMonthly"`
	InflationLinked *bool   `mapstructure:"inflationLinked"`
	Tentative       bool    `mapstructure:"tentative"`
}

type rawBigExpense struct {
	Name            string  `mapstructure:"name"`
	Amount          float64 `mapstructure:"amount"`
	Year            int     `mapstructure:"year"`
	RecurrenceYears int     `mapstructure:"recurrenceYears"`
	InflationLinked *bool   `mapstructure:"inflationLinked"`
}

type rawInvestment struct {
	CurrentCorpus          float64    `mapstructure:"currentCorpus"`
	MonthlyContribution    float64    `mapstructure:"monthlyContribution"`
	ExpectedAnnualReturn   *float64   `mapstructure:"expectedAnnualReturn"`
	ContributionGrowthRate float64    `mapstructure:"contributionGrowthRate"`
	SIPs                   []plan.SIP `mapstructure:"sips"`
}

type rawLoan struct {
	Name             string  `mapstructure:"name"`
	Principal        float64 `mapstructure:"principal"`
	APR              float64 `mapstructure:"apr"`
	TenureMonths     int     `mapstructure:"tenureMonths"`
	StartYear        int     `mapstructure:"startYear"`
	StartMonth       *int    `mapstructure:"startMonth"`
	PrimaryResidence bool    `mapstructure:"primaryResidence"`
}

// ParseDocument decodes a JSON or YAML plan and fills omitted fields with
// their defaults. A plan without incomes gets an empty salary for "you".
func (im *Importer) ParseDocument(r io.Reader, format string) (plan.Input, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return plan.Input{}, fmt.Errorf("decoding %s plan: %w", format, err)
	}

	var raw rawDocument
	if err := v.Unmarshal(&raw); err != nil {
		return plan.Input{}, fmt.Errorf("unable to decode %s plan into struct: %w", format, err)
	}

	return raw.toInput(im.currentYear()), nil
}

func (raw rawDocument) toInput(currentYear int) plan.Input {
	in := defaultInput(currentYear)

	s := raw.Settings
	in.Settings.StartYear = valueOr(s.StartYear, currentYear)
	in.Settings.HorizonYears = valueOr(s.HorizonYears, constants.DefaultHorizonYears)
	in.Settings.Currency = valueOr(s.Currency, constants.DefaultCurrency)
	in.Settings.InflationRate = valueOr(s.InflationRate, constants.DefaultInflationRate)

	for _, r := range raw.Incomes {
		in.Incomes = append(in.Incomes, plan.Income{
			Person:           r.Person,
			BaseAmount:       r.BaseAmount,
			BaseIsMonthly:    valueOr(r.BaseIsMonthly, true),
			AnnualGrowthRate: valueOr(r.AnnualGrowthRate, constants.DefaultAnnualGrowthRate),
			BonusAnnual:      r.BonusAnnual,
			StocksAnnual:     r.StocksAnnual,
			RSUsAnnual:       r.RSUsAnnual,
		})
	}
	if len(in.Incomes) == 0 {
		in.Incomes = []plan.Income{defaultIncome()}
	}

	for _, r := range raw.MonthlyExpenses {
		in.MonthlyExpenses = append(in.MonthlyExpenses, plan.MonthlyExpense{
			Name:            r.Name,
			AmountMonthly:   r.AmountMonthly,
			InflationLinked: valueOr(r.InflationLinked, true),
			Tentative:       r.Tentative,
		})
	}

	for _, r := range raw.BigExpenses {
		in.BigExpenses = append(in.BigExpenses, plan.BigExpense{
			Name:            r.Name,
			Amount:          r.Amount,
			Year:            r.Year,
			RecurrenceYears: r.RecurrenceYears,
			InflationLinked: valueOr(r.InflationLinked, true),
		})
	}

	in.Investment = plan.Investment{
		CurrentCorpus:          raw.Investment.CurrentCorpus,
		MonthlyContribution:    raw.Investment.MonthlyContribution,
		ExpectedAnnualReturn:   valueOr(raw.Investment.ExpectedAnnualReturn, constants.DefaultExpectedAnnualReturn),
		ContributionGrowthRate: raw.Investment.ContributionGrowthRate,
		SIPs:                   raw.Investment.SIPs,
	}

	for _, r := range raw.Loans {
		in.Loans = append(in.Loans, plan.Loan{
			Name:             r.Name,
			Principal:        r.Principal,
			APR:              r.APR,
			TenureMonths:     r.TenureMonths,
			StartYear:        r.StartYear,
			StartMonth:       valueOr(r.StartMonth, constants.DefaultStartMonth),
			PrimaryResidence: r.PrimaryResidence,
		})
	}

	return in
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
