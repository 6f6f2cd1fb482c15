// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/household-plan/pkg/constants"
)

const (
	// DateTimeLayout is the month layout used for amortization and log output.
	DateTimeLayout = constants.DateTimeLayout
)

// Month identifies a calendar month without a day component.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth builds a Month, normalizing out-of-range months the same way
// time.Date does (month 13 of 2025 is January 2026).
func NewMonth(year, month int) Month {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Time returns the first instant of the month in UTC.
func (m Month) Time() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	return m.Offset(1)
}

// Offset returns the month the given number of months away.
func (m Month) Offset(months int) Month {
	t := m.Time().AddDate(0, months, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// IsJanuary reports whether the month is January.
func (m Month) IsJanuary() bool {
	return m.Month == time.January
}

// String formats the month using DateTimeLayout.
func (m Month) String() string {
	return m.Time().Format(DateTimeLayout)
}

// Parse parses a DateTimeLayout string into a Month.
func Parse(value string) (Month, error) {
	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return Month{}, err
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MustParse parses a date string and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParse(value string) Month {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return m
}

// MonthsBetween returns the number of months from a to b (negative when b is
// before a).
func MonthsBetween(a, b Month) int {
	return (b.Year-a.Year)*constants.MonthsPerYear + int(b.Month) - int(a.Month)
}
