package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Sub-cent residual", 1e-9, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsZero(tt.input); got != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompound(t *testing.T) {
	tests := []struct {
		name     string
		percent  float64
		periods  int
		expected float64
	}{
		{"No periods", 10, 0, 1},
		{"Negative periods treated as none", 10, -2, 1},
		{"One period", 10, 1, 1.1},
		{"Two periods", 10, 2, 1.21},
		{"Zero rate", 0, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compound(tt.percent, tt.periods); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Compound(%v, %d) = %v, expected %v", tt.percent, tt.periods, got, tt.expected)
			}
		})
	}
}

func TestRateConversions(t *testing.T) {
	if got := PercentToRate(7.5); math.Abs(got-0.075) > 1e-12 {
		t.Errorf("PercentToRate(7.5) = %v", got)
	}
	if got := MonthlyRate(12); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("MonthlyRate(12) = %v", got)
	}
	if got := FloorZero(-3); got != 0 {
		t.Errorf("FloorZero(-3) = %v", got)
	}
	if got := Sanitize(math.NaN()); got != 0 {
		t.Errorf("Sanitize(NaN) = %v", got)
	}
	if got := Sanitize(math.Inf(1)); got != 0 {
		t.Errorf("Sanitize(+Inf) = %v", got)
	}
	if got := Sanitize(4.2); got != 4.2 {
		t.Errorf("Sanitize(4.2) = %v", got)
	}
}
