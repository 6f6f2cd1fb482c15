package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/finance"
	"github.com/iwvelando/household-plan/pkg/validation"
	"go.uber.org/multierr"
)

// Validate checks every field of the plan and reports all violations at
// once. The projection engine assumes a plan that passed Validate.
func Validate(in Input) error {
	var err error

	s := in.Settings
	if s.StartYear < constants.AbsoluteYearThreshold {
		err = multierr.Append(err, fmt.Errorf("settings.startYear must be at least %d, got %d", constants.AbsoluteYearThreshold, s.StartYear))
	}
	if s.HorizonYears < 1 || s.HorizonYears > constants.MaxHorizonYears {
		err = multierr.Append(err, fmt.Errorf("settings.horizonYears must be between 1 and %d, got %d", constants.MaxHorizonYears, s.HorizonYears))
	}
	if strings.TrimSpace(s.Currency) == "" {
		err = multierr.Append(err, fmt.Errorf("settings.currency is required"))
	}
	err = multierr.Append(err, percent("settings.inflationRate", s.InflationRate))

	if len(in.Incomes) < 1 || len(in.Incomes) > 2 {
		err = multierr.Append(err, fmt.Errorf("incomes must have 1 or 2 entries, got %d", len(in.Incomes)))
	}
	seen := make(map[string]bool)
	for i, inc := range in.Incomes {
		field := fmt.Sprintf("incomes[%d]", i)
		if inc.Person != constants.PersonYou && inc.Person != constants.PersonWife {
			err = multierr.Append(err, fmt.Errorf("%s.person must be %q or %q, got %q", field, constants.PersonYou, constants.PersonWife, inc.Person))
		} else if seen[inc.Person] {
			err = multierr.Append(err, fmt.Errorf("%s.person %q is duplicated", field, inc.Person))
		}
		seen[inc.Person] = true
		err = multierr.Append(err, nonNegative(field+".baseAmount", inc.BaseAmount))
		err = multierr.Append(err, percent(field+".annualGrowthRate", inc.AnnualGrowthRate))
		err = multierr.Append(err, nonNegative(field+".bonusAnnual", inc.BonusAnnual))
		err = multierr.Append(err, nonNegative(field+".stocksAnnual", inc.StocksAnnual))
		err = multierr.Append(err, nonNegative(field+".rsusAnnual", inc.RSUsAnnual))
	}

	for i, exp := range in.MonthlyExpenses {
		field := fmt.Sprintf("monthlyExpenses[%d]", i)
		err = multierr.Append(err, named(field, exp.Name))
		err = multierr.Append(err, nonNegative(field+".amountMonthly", exp.AmountMonthly))
	}

	for i, exp := range in.BigExpenses {
		field := fmt.Sprintf("bigExpenses[%d]", i)
		err = multierr.Append(err, named(field, exp.Name))
		err = multierr.Append(err, nonNegative(field+".amount", exp.Amount))
		if exp.Year < 0 {
			err = multierr.Append(err, fmt.Errorf("%s.year must be non-negative, got %d", field, exp.Year))
		}
		if exp.RecurrenceYears < 0 {
			err = multierr.Append(err, fmt.Errorf("%s.recurrenceYears must be non-negative, got %d", field, exp.RecurrenceYears))
		}
	}

	inv := in.Investment
	err = multierr.Append(err, nonNegative("investment.currentCorpus", inv.CurrentCorpus))
	err = multierr.Append(err, nonNegative("investment.monthlyContribution", inv.MonthlyContribution))
	err = multierr.Append(err, percent("investment.expectedAnnualReturn", inv.ExpectedAnnualReturn))
	err = multierr.Append(err, percent("investment.contributionGrowthRate", inv.ContributionGrowthRate))
	for i, sip := range inv.SIPs {
		field := fmt.Sprintf("investment.sips[%d]", i)
		err = multierr.Append(err, named(field, sip.Name))
		err = multierr.Append(err, nonNegative(field+".amountMonthly", sip.AmountMonthly))
	}

	for i, l := range in.Loans {
		field := fmt.Sprintf("loans[%d]", i)
		err = multierr.Append(err, named(field, l.Name))
		err = multierr.Append(err, nonNegative(field+".principal", l.Principal))
		err = multierr.Append(err, percent(field+".apr", l.APR))
		if l.TenureMonths < 1 {
			err = multierr.Append(err, fmt.Errorf("%s.tenureMonths must be at least 1, got %d", field, l.TenureMonths))
		}
		if l.StartYear < constants.AbsoluteYearThreshold {
			err = multierr.Append(err, fmt.Errorf("%s.startYear must be at least %d, got %d", field, constants.AbsoluteYearThreshold, l.StartYear))
		}
		if l.StartMonth < 1 || l.StartMonth > 12 {
			err = multierr.Append(err, fmt.Errorf("%s.startMonth must be between 1 and 12, got %d", field, l.StartMonth))
		}
	}

	return err
}

// Warnings returns advisory messages for a plan that is valid but likely
// not what the user meant.
func Warnings(in Input, now time.Time) []string {
	hv := &validation.HorizonValidator{
		StartYear:   in.Settings.StartYear,
		EndYear:     in.EndYear(),
		CurrentYear: now.Year(),
	}
	for _, l := range in.Loans {
		hv.Loans = append(hv.Loans, validation.LoanConfig{Name: l.Name, StartYear: l.StartYear, StartMonth: l.StartMonth, Term: l.TenureMonths})
	}
	for _, exp := range in.BigExpenses {
		hv.Expenses = append(hv.Expenses, validation.ExpenseConfig{
			Name:        exp.Name,
			FirstYear:   finance.FirstOccurrence(exp, in.Settings.StartYear),
			Recurring:   exp.RecurrenceYears > 0,
			Occurrences: len(finance.OccurrenceYears(exp, in.Settings.StartYear, in.EndYear())),
		})
	}

	warnings := hv.ValidateAll()
	if warning := homeLoanWarning(in); warning != "" {
		warnings = append(warnings, warning)
	}
	return warnings
}

func homeLoanWarning(in Input) string {
	var flagged, byName []string
	for _, l := range in.Loans {
		if l.PrimaryResidence {
			flagged = append(flagged, l.Name)
		}
		if isHomeLoanName(l.Name) {
			byName = append(byName, l.Name)
		}
	}

	home := in.HomeLoan()
	switch {
	case len(flagged) > 1:
		return fmt.Sprintf("Multiple loans are marked primaryResidence (%s); using '%s' as the home loan",
			strings.Join(flagged, ", "), home.Name)
	case len(flagged) == 0 && len(byName) > 1:
		return fmt.Sprintf("Multiple loan names contain %q (%s); using '%s' as the home loan. Set primaryResidence to choose explicitly",
			constants.HomeLoanKeyword, strings.Join(byName, ", "), home.Name)
	}
	return ""
}

func nonNegative(field string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%s must be non-negative, got %v", field, v)
	}
	return nil
}

func percent(field string, v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100, got %v", field, v)
	}
	return nil
}

func named(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s.name is required", field)
	}
	return nil
}
