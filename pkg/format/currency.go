// Package format renders amounts with thousands grouping.
package format

import (
	"strconv"
	"strings"

	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Symbol returns the display symbol for an ISO currency code. Unknown codes
// are returned followed by a space.
func Symbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return s
	}
	if code == "" {
		return ""
	}
	return code + " "
}

// Currency returns an amount with a currency symbol and separators (e.g., "-₹12,34,567.89").
func Currency(amount float64, code, grouping string) string {
	formatted := formatPositive(amount, grouping)
	if isNegative(amount) {
		return "-" + Symbol(code) + formatted
	}
	return Symbol(code) + formatted
}

// Number returns an amount without a currency symbol but with separators (e.g., "-1,234.56").
func Number(amount float64, grouping string) string {
	sign := ""
	if isNegative(amount) {
		sign = "-"
	}
	return sign + formatPositive(amount, grouping)
}

// Rate renders a percentage with as many digits as needed.
func Rate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// isNegative reports whether amount is still negative after rounding to cents.
func isNegative(amount float64) bool {
	return decimal.NewFromFloat(amount).Round(2).IsNegative()
}

func formatPositive(amount float64, grouping string) string {
	formatted := decimal.NewFromFloat(amount).Abs().StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if grouping == constants.GroupingIndian {
		intPart = groupIndian(intPart)
	} else {
		intPart = groupThousands(intPart)
	}

	return intPart + "." + decPart
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}

// groupIndian groups the last three digits, then pairs (12,34,567).
func groupIndian(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var builder strings.Builder
	for i, digit := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String() + "," + tail
}
