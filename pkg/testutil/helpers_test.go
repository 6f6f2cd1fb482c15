package testutil

import (
	"testing"

	"github.com/iwvelando/household-plan/internal/plan"
)

func TestFindYear(t *testing.T) {
	out := plan.Output{Results: []plan.YearResult{
		{Year: 2025, NetSavings: 1000},
		{Year: 2026, NetSavings: 2000},
		{Year: 2027, NetSavings: 3000},
	}}

	tests := []struct {
		name        string
		year        int
		expectFound bool
		expected    float64
	}{
		{name: "first year", year: 2025, expectFound: true, expected: 1000},
		{name: "last year", year: 2027, expectFound: true, expected: 3000},
		{name: "before start", year: 2024},
		{name: "after end", year: 2028},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindYear(out, tt.year)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("Expected nil for year %d, got %+v", tt.year, result)
				}
				return
			}
			if result == nil {
				t.Fatalf("Expected year %d to be found", tt.year)
			}
			if result.NetSavings != tt.expected {
				t.Errorf("Expected net savings %.2f, got %.2f", tt.expected, result.NetSavings)
			}
		})
	}
}

func TestFindYearReturnsPointerIntoOutput(t *testing.T) {
	out := plan.Output{Results: []plan.YearResult{{Year: 2025}}}
	FindYear(out, 2025).CorpusEnd = 42
	if out.Results[0].CorpusEnd != 42 {
		t.Errorf("Expected FindYear to return a pointer into the results slice")
	}
}

func TestFixturesAreValid(t *testing.T) {
	fixtures := map[string]plan.Input{
		"household":   HouseholdPlan(2025, 12),
		"salary only": SalaryOnlyPlan(2025),
	}
	for name, in := range fixtures {
		if err := plan.Validate(in); err != nil {
			t.Errorf("%s fixture is invalid: %v", name, err)
		}
	}
}
