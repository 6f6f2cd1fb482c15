// Package finance provides the yearly calculators used by the plan
// projection: investments, expenses and income.
package finance

// Income describes one person's earnings.
type Income struct {
	Person           string  `json:"person" yaml:"person" mapstructure:"person"`
	BaseAmount       float64 `json:"baseAmount" yaml:"baseAmount" mapstructure:"baseAmount"`
	BaseIsMonthly    bool    `json:"baseIsMonthly" yaml:"baseIsMonthly" mapstructure:"baseIsMonthly"`
	AnnualGrowthRate float64 `json:"annualGrowthRate" yaml:"annualGrowthRate" mapstructure:"annualGrowthRate"` // percent
	BonusAnnual      float64 `json:"bonusAnnual" yaml:"bonusAnnual" mapstructure:"bonusAnnual"`
	StocksAnnual     float64 `json:"stocksAnnual" yaml:"stocksAnnual" mapstructure:"stocksAnnual"`
	RSUsAnnual       float64 `json:"rsusAnnual" yaml:"rsusAnnual" mapstructure:"rsusAnnual"`
}

// MonthlyExpense is a recurring expense paid every month.
type MonthlyExpense struct {
	Name            string  `json:"name" yaml:"name" mapstructure:"name"`
	AmountMonthly   float64 `json:"amountMonthly" yaml:"amountMonthly" mapstructure:"amountMonthly"`
	InflationLinked bool    `json:"inflationLinked" yaml:"inflationLinked" mapstructure:"inflationLinked"`
	Tentative       bool    `json:"tentative" yaml:"tentative" mapstructure:"tentative"`
}

// BigExpense is a lump-sum expense, optionally repeating every
// RecurrenceYears. Year is a calendar year when at least 1900, otherwise an
// offset from the plan start year.
type BigExpense struct {
	Name            string  `json:"name" yaml:"name" mapstructure:"name"`
	Amount          float64 `json:"amount" yaml:"amount" mapstructure:"amount"`
	Year            int     `json:"year" yaml:"year" mapstructure:"year"`
	RecurrenceYears int     `json:"recurrenceYears,omitempty" yaml:"recurrenceYears,omitempty" mapstructure:"recurrenceYears"` // 0 = one-off
	InflationLinked bool    `json:"inflationLinked" yaml:"inflationLinked" mapstructure:"inflationLinked"`
}

// SIP is a systematic investment plan contribution.
type SIP struct {
	Name          string  `json:"name" yaml:"name" mapstructure:"name"`
	AmountMonthly float64 `json:"amountMonthly" yaml:"amountMonthly" mapstructure:"amountMonthly"`
}

// Investment is the household's pooled investment corpus.
type Investment struct {
	CurrentCorpus          float64 `json:"currentCorpus" yaml:"currentCorpus" mapstructure:"currentCorpus"`
	MonthlyContribution    float64 `json:"monthlyContribution" yaml:"monthlyContribution" mapstructure:"monthlyContribution"`
	ExpectedAnnualReturn   float64 `json:"expectedAnnualReturn" yaml:"expectedAnnualReturn" mapstructure:"expectedAnnualReturn"`       // percent
	ContributionGrowthRate float64 `json:"contributionGrowthRate" yaml:"contributionGrowthRate" mapstructure:"contributionGrowthRate"` // percent
	SIPs                   []SIP   `json:"sips" yaml:"sips" mapstructure:"sips"`
}

// BaseMonthly returns the monthly contribution including all SIPs.
func (i Investment) BaseMonthly() float64 {
	total := i.MonthlyContribution
	for _, sip := range i.SIPs {
		total += sip.AmountMonthly
	}
	return total
}
