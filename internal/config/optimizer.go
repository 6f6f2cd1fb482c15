package config

import (
	"fmt"
)

const (
	defaultTolerance     = 100.0
	defaultMaxIterations = 60
)

// OptimizerConfig bounds the home loan prepayment search.
type OptimizerConfig struct {
	// Floor is the minimum net savings left each year after the prepayment.
	Floor float64 `yaml:"floor" mapstructure:"floor"`
	// Max caps the yearly prepayment. Zero means the home loan principal.
	Max           float64 `yaml:"max,omitempty" mapstructure:"max"`
	Tolerance     float64 `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int     `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// Normalize ensures defaults are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	if o.Tolerance <= 0 {
		o.Tolerance = defaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unusable.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	if o.Max < 0 {
		return fmt.Errorf("optimizer maximum %.2f must not be negative", o.Max)
	}
	if o.Max > 0 && o.Tolerance >= o.Max {
		return fmt.Errorf("optimizer tolerance %.2f must be less than maximum %.2f", o.Tolerance, o.Max)
	}
	return nil
}
