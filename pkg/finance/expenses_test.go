package finance

import (
	"math"
	"reflect"
	"testing"
)

func TestAnnualMonthlyExpenses(t *testing.T) {
	expenses := []MonthlyExpense{
		{Name: "rent", AmountMonthly: 30000, InflationLinked: true},
		{Name: "insurance", AmountMonthly: 2000, InflationLinked: false},
	}

	tests := []struct {
		name      string
		yearIndex int
		inflation float64
		expected  float64
	}{
		{"First year", 0, 6, 360000 + 24000},
		{"Second year", 1, 6, 360000*1.06 + 24000},
		{"Third year", 2, 6, 360000*1.06*1.06 + 24000},
		{"No inflation", 5, 0, 384000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualMonthlyExpenses(expenses, tt.yearIndex, tt.inflation)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("AnnualMonthlyExpenses() = %.4f, expected %.4f", got, tt.expected)
			}
		})
	}
}

func TestAnnualMonthlyExpensesEmpty(t *testing.T) {
	if got := AnnualMonthlyExpenses(nil, 3, 5); got != 0 {
		t.Errorf("expected 0, got %.2f", got)
	}
}

func TestBigExpenseRecurrence(t *testing.T) {
	exp := BigExpense{Name: "car upgrade", Amount: 800000, Year: 0, RecurrenceYears: 5}

	got := OccurrenceYears(exp, 2025, 2039)
	expected := []int{2025, 2030, 2035}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("OccurrenceYears() = %v, expected %v", got, expected)
	}
}

func TestBigExpenseOccurs(t *testing.T) {
	tests := []struct {
		name     string
		exp      BigExpense
		year     int
		expected bool
	}{
		{"One-off offset year", BigExpense{Year: 2}, 2027, true},
		{"One-off offset other year", BigExpense{Year: 2}, 2028, false},
		{"Absolute year", BigExpense{Year: 2030}, 2030, true},
		{"Before first occurrence", BigExpense{Year: 2030, RecurrenceYears: 1}, 2029, false},
		{"Yearly recurrence", BigExpense{Year: 2030, RecurrenceYears: 1}, 2034, true},
		{"Absolute year before plan start", BigExpense{Year: 2020, RecurrenceYears: 3}, 2026, true},
		{"Absolute year before plan start off cycle", BigExpense{Year: 2020, RecurrenceYears: 3}, 2025, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Occurs(tt.exp, tt.year, 2025); got != tt.expected {
				t.Errorf("Occurs(%+v, %d) = %v, expected %v", tt.exp, tt.year, got, tt.expected)
			}
		})
	}
}

func TestAnnualBigExpenses(t *testing.T) {
	expenses := []BigExpense{
		{Name: "wedding", Amount: 1000000, Year: 2027, InflationLinked: true},
		{Name: "vacation", Amount: 200000, Year: 0, RecurrenceYears: 2, InflationLinked: true},
		{Name: "laptop", Amount: 150000, Year: 1, RecurrenceYears: 3, InflationLinked: false},
	}

	tests := []struct {
		year     int
		expected float64
	}{
		{2025, 200000},
		{2026, 150000},
		{2027, 1000000 + 200000*1.1*1.1},
		{2028, 0},
		{2029, 200000 * math.Pow(1.1, 4) + 150000},
	}

	for _, tt := range tests {
		got := AnnualBigExpenses(expenses, tt.year, 2025, 10)
		if math.Abs(got-tt.expected) > 1e-6 {
			t.Errorf("AnnualBigExpenses(%d) = %.4f, expected %.4f", tt.year, got, tt.expected)
		}
	}
}

func TestSplitTentative(t *testing.T) {
	expenses := []MonthlyExpense{
		{Name: "rent"},
		{Name: "gym", Tentative: true},
		{Name: "groceries"},
	}

	fixed, tentative := SplitTentative(expenses)
	if len(fixed) != 2 || len(tentative) != 1 {
		t.Fatalf("split = %d fixed, %d tentative", len(fixed), len(tentative))
	}
	if tentative[0].Name != "gym" {
		t.Errorf("unexpected tentative expense %q", tentative[0].Name)
	}
}

func TestNewExpenseProcessorNilLogger(t *testing.T) {
	if ep := NewExpenseProcessor(nil); ep.logger == nil {
		t.Fatal("expected a no-op logger")
	}
}
