// Package constants provides shared constants for the household-plan application.
package constants

// DateTimeLayout is the month layout used in log fields and amortization
// output.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// AbsoluteYearThreshold separates absolute calendar years from offsets
	// relative to the plan start year in big expense schedules.
	AbsoluteYearThreshold = 1900

	// MaxHorizonYears bounds the projection horizon.
	MaxHorizonYears = 50

	// HomeLoanKeyword identifies the home loan by name when no loan is
	// explicitly flagged as the primary residence loan.
	HomeLoanKeyword = "home"
)

// Plan defaults, mirroring the values the plan schema fills in when a field
// is omitted.
const (
	DefaultCurrency             = "INR"
	DefaultHorizonYears         = 10
	DefaultInflationRate        = 5.0
	DefaultAnnualGrowthRate     = 7.0
	DefaultExpectedAnnualReturn = 8.0
	DefaultStartMonth           = 1
)

// Person identifiers used by incomes and growth-rate overrides.
const (
	PersonYou  = "you"
	PersonWife = "wife"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable console table
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the transposed Metric-by-year CSV export
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the serialized projection output
	OutputFormatJSON = "json"

	// OutputFormatYAML is used for plan templates only
	OutputFormatYAML = "yaml"
)

// Number grouping styles for exported amounts.
const (
	GroupingInternational = "international"
	GroupingIndian        = "indian"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "household-plan.yaml"

	// EnvPrefix is the prefix for environment overrides of the app config
	EnvPrefix = "HOUSEHOLD_PLAN"
)
