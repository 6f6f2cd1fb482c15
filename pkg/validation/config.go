// Package validation provides plan validation utilities that produce
// advisory warnings rather than hard errors.
package validation

import (
	"fmt"

	"github.com/iwvelando/household-plan/pkg/datetime"
	"github.com/iwvelando/household-plan/pkg/loans"
)

// ValidateLoanHorizon checks if a loan matures after the last month of the
// projection. Such a loan still has a pending balance when the plan ends.
func ValidateLoanHorizon(loanName string, maturity, horizonEnd datetime.Month) string {
	if datetime.MonthsBetween(horizonEnd, maturity) > 0 {
		return fmt.Sprintf("Loan '%s' matures after the projection ends (%s > %s) - loan will have outstanding balance",
			loanName, maturity, horizonEnd)
	}

	return ""
}

// ValidateStartYear warns when a plan starts before the current year.
func ValidateStartYear(startYear, currentYear int) string {
	if startYear < currentYear {
		return fmt.Sprintf("Plan starts in %d, before the current year %d", startYear, currentYear)
	}
	return ""
}

// ValidateExpenseYear checks if a big expense is scheduled relative to the
// projection window.
func ValidateExpenseYear(expenseName string, firstYear, startYear, endYear int, recurring bool) string {
	if firstYear > endYear {
		return fmt.Sprintf("Big expense '%s' first occurs in %d, after the projection ends in %d",
			expenseName, firstYear, endYear)
	}
	if firstYear < startYear && !recurring {
		return fmt.Sprintf("Big expense '%s' occurs in %d, before the projection starts in %d",
			expenseName, firstYear, startYear)
	}
	return ""
}

// ValidateExpenseOccurrences warns when a recurring big expense starts in
// time but its cycle skips every year of the projection.
func ValidateExpenseOccurrences(expenseName string, occurrences, startYear, endYear int) string {
	if occurrences == 0 {
		return fmt.Sprintf("Big expense '%s' never recurs within the projection %d-%d",
			expenseName, startYear, endYear)
	}
	return ""
}

// HorizonValidator collects the plan facts needed for horizon warnings.
type HorizonValidator struct {
	StartYear   int
	EndYear     int
	CurrentYear int
	Loans       []LoanConfig
	Expenses    []ExpenseConfig
}

// LoanConfig is the subset of a loan the validator needs.
type LoanConfig struct {
	Name       string
	StartYear  int
	StartMonth int
	Term       int
}

// ExpenseConfig is the subset of a big expense the validator needs.
type ExpenseConfig struct {
	Name        string
	FirstYear   int
	Recurring   bool
	Occurrences int // years within the projection in which it falls
}

// ValidateAll validates the plan window and returns warnings
func (hv *HorizonValidator) ValidateAll() []string {
	var warnings []string

	if warning := ValidateStartYear(hv.StartYear, hv.CurrentYear); warning != "" {
		warnings = append(warnings, warning)
	}

	horizonEnd := datetime.NewMonth(hv.EndYear, 12)
	for _, loan := range hv.Loans {
		if loan.Term <= 0 {
			continue
		}
		maturity := loans.MaturityMonth(loans.Terms{Name: loan.Name, StartYear: loan.StartYear, StartMonth: loan.StartMonth, TenureMonths: loan.Term})
		if warning := ValidateLoanHorizon(loan.Name, maturity, horizonEnd); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	for _, exp := range hv.Expenses {
		warning := ValidateExpenseYear(exp.Name, exp.FirstYear, hv.StartYear, hv.EndYear, exp.Recurring)
		if warning == "" && exp.Recurring {
			warning = ValidateExpenseOccurrences(exp.Name, exp.Occurrences, hv.StartYear, hv.EndYear)
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
