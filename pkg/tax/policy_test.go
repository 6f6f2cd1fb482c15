package tax

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOldRegimeTax(t *testing.T) {
	policy := OldRegime()

	tests := []struct {
		name     string
		gross    float64
		expected float64
	}{
		{"Zero income", 0, 0},
		{"Below standard deduction", 40000, 0},
		{"Rebate boundary", 550000, 0},
		{"Just above rebate", 551000, (12500 + 1000*0.20) * 1.04},
		{"Top slab", 1200000, 163800},
		{"Exactly at 10L taxable", 1050000, 112500 * 1.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, policy.Tax(tt.gross), 1e-6)
		})
	}
}

func TestOldRegimeRebateIsACliff(t *testing.T) {
	policy := OldRegime()

	assert.Equal(t, 0.0, policy.Tax(550000))
	assert.Greater(t, policy.Tax(551000), 0.0)
	// Crossing the ceiling charges the whole 2.5L-5L slab.
	assert.Greater(t, policy.Tax(550001), 12500.0)
}

func TestSlabPolicyConfigurableTable(t *testing.T) {
	policy := &SlabPolicy{
		Label:             "flat-ten",
		StandardDeduction: 0,
		Brackets: []Bracket{
			{Upper: 100000, Rate: 0},
			{Upper: 0, Rate: 10}, // open-ended
		},
		Cess: 0,
	}
	require.NoError(t, policy.Validate())

	assert.Equal(t, "flat-ten", policy.Name())
	assert.InDelta(t, 10000, policy.Tax(200000), 1e-9)
	assert.InDelta(t, 200000, policy.Taxable(200000), 1e-9)
}

func TestSlabPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  *SlabPolicy
		wantErr bool
	}{
		{"Default table", OldRegime(), false},
		{"No brackets", &SlabPolicy{}, true},
		{"Unsorted brackets", &SlabPolicy{Brackets: []Bracket{{Upper: 500000, Rate: 5}, {Upper: 250000, Rate: 10}, {Upper: math.Inf(1), Rate: 30}}}, true},
		{"Negative rate", &SlabPolicy{Brackets: []Bracket{{Upper: 100, Rate: -5}}}, true},
		{"Negative deduction", &SlabPolicy{StandardDeduction: -1, Brackets: []Bracket{{Upper: 100, Rate: 5}}}, true},
		{"Cess out of range", &SlabPolicy{Cess: 120, Brackets: []Bracket{{Upper: 100, Rate: 5}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPolicyFunc(t *testing.T) {
	var policy Policy = PolicyFunc(func(gross float64) float64 { return gross * 0.1 })

	assert.Equal(t, "custom", policy.Name())
	assert.InDelta(t, 100, policy.Tax(1000), 1e-9)
}

func TestSlabPolicyDefaultName(t *testing.T) {
	assert.Equal(t, "slab", (&SlabPolicy{}).Name())
	assert.Equal(t, "old-regime", OldRegime().Name())
}
