// Package tax computes income tax through replaceable policies.
package tax

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/household-plan/pkg/mathutil"
)

// Policy computes the tax owed on a gross annual income.
type Policy interface {
	Name() string
	Tax(gross float64) float64
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(gross float64) float64

// Name implements Policy.
func (f PolicyFunc) Name() string { return "custom" }

// Tax implements Policy.
func (f PolicyFunc) Tax(gross float64) float64 { return f(gross) }

// Bracket taxes the slice of taxable income up to Upper at Rate percent.
// The last bracket may use math.Inf(1) as Upper.
type Bracket struct {
	Upper float64 `json:"upper" yaml:"upper" mapstructure:"upper"`
	Rate  float64 `json:"rate" yaml:"rate" mapstructure:"rate"`
}

// SlabPolicy is a progressive slab table with a standard deduction, a full
// rebate below a taxable-income ceiling, and a flat cess on the result.
type SlabPolicy struct {
	Label             string    `json:"name" yaml:"name" mapstructure:"name"`
	StandardDeduction float64   `json:"standardDeduction" yaml:"standardDeduction" mapstructure:"standardDeduction"`
	Brackets          []Bracket `json:"brackets" yaml:"brackets" mapstructure:"brackets"`
	RebateCeiling     float64   `json:"rebateCeiling" yaml:"rebateCeiling" mapstructure:"rebateCeiling"`
	Cess              float64   `json:"cess" yaml:"cess" mapstructure:"cess"` // percent
}

// OldRegime returns the default slab table: 50,000 standard deduction,
// nil/5/20/30 percent slabs at 2.5L/5L/10L, rebate up to 5L taxable and a 4%
// cess.
func OldRegime() *SlabPolicy {
	return &SlabPolicy{
		Label:             "old-regime",
		StandardDeduction: 50000,
		Brackets: []Bracket{
			{Upper: 250000, Rate: 0},
			{Upper: 500000, Rate: 5},
			{Upper: 1000000, Rate: 20},
			{Upper: math.Inf(1), Rate: 30},
		},
		RebateCeiling: 500000,
		Cess:          4,
	}
}

// Name implements Policy.
func (p *SlabPolicy) Name() string {
	if p.Label == "" {
		return "slab"
	}
	return p.Label
}

// Taxable returns gross income less the standard deduction, floored at 0.
func (p *SlabPolicy) Taxable(gross float64) float64 {
	return mathutil.FloorZero(gross - p.StandardDeduction)
}

// Tax implements Policy.
func (p *SlabPolicy) Tax(gross float64) float64 {
	taxable := p.Taxable(gross)
	if taxable <= p.RebateCeiling {
		return 0
	}
	slab := p.slabTax(taxable)
	return slab + slab*mathutil.PercentToRate(p.Cess)
}

// slabTax taxes each bracket's slice of taxable income. Income above the
// last bracket's Upper is taxed at its rate.
func (p *SlabPolicy) slabTax(taxable float64) float64 {
	tax := 0.0
	lower := 0.0
	for i, b := range p.Brackets {
		if taxable <= lower {
			break
		}
		upper := b.Upper
		if i == len(p.Brackets)-1 {
			upper = math.Inf(1)
		}
		slice := math.Min(taxable, upper) - lower
		tax += slice * mathutil.PercentToRate(b.Rate)
		lower = upper
	}
	return tax
}

// Validate checks that the table is usable.
func (p *SlabPolicy) Validate() error {
	if len(p.Brackets) == 0 {
		return errors.New("tax policy requires at least one bracket")
	}
	if p.StandardDeduction < 0 {
		return fmt.Errorf("standard deduction must be non-negative, got %v", p.StandardDeduction)
	}
	if p.RebateCeiling < 0 {
		return fmt.Errorf("rebate ceiling must be non-negative, got %v", p.RebateCeiling)
	}
	if p.Cess < 0 || p.Cess > 100 {
		return fmt.Errorf("cess must be between 0 and 100, got %v", p.Cess)
	}
	prev := 0.0
	for i, b := range p.Brackets {
		if b.Rate < 0 || b.Rate > 100 {
			return fmt.Errorf("bracket %d: rate must be between 0 and 100, got %v", i, b.Rate)
		}
		if i < len(p.Brackets)-1 && b.Upper <= prev {
			return fmt.Errorf("bracket %d: upper bound %v must exceed %v", i, b.Upper, prev)
		}
		prev = b.Upper
	}
	return nil
}
