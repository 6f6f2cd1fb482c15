// Package config defines the application configuration and loads it with
// viper from a file and HOUSEHOLD_PLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/tax"
	"github.com/iwvelando/household-plan/pkg/validation"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Configuration holds all configuration for household-plan.
type Configuration struct {
	Logging    LoggingConfig    `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig     `yaml:"output,omitempty" mapstructure:"output"`
	Projection ProjectionConfig `yaml:"projection,omitempty" mapstructure:"projection"`
	Tax        TaxConfig        `yaml:"tax,omitempty" mapstructure:"tax"`
	Optimizer  OptimizerConfig  `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty" mapstructure:"format"`     // pretty, csv, json
	Grouping string `yaml:"grouping,omitempty" mapstructure:"grouping"` // international, indian
}

// ProjectionConfig holds defaults for projection runs.
type ProjectionConfig struct {
	IncludeTentative bool `yaml:"includeTentative" mapstructure:"includeTentative"`
}

// TaxConfig describes the slab table used to tax each person's income.
// An empty bracket list selects the default table.
type TaxConfig struct {
	Name              string        `yaml:"name,omitempty" mapstructure:"name"`
	StandardDeduction float64       `yaml:"standardDeduction" mapstructure:"standardDeduction"`
	RebateCeiling     float64       `yaml:"rebateCeiling" mapstructure:"rebateCeiling"`
	Cess              float64       `yaml:"cess" mapstructure:"cess"`
	Brackets          []tax.Bracket `yaml:"brackets,omitempty" mapstructure:"brackets"`
}

// Policy builds the tax policy described by the configuration.
func (t TaxConfig) Policy() (*tax.SlabPolicy, error) {
	policy := tax.OldRegime()
	if t.Name != "" {
		policy.Label = t.Name
	}
	policy.StandardDeduction = t.StandardDeduction
	policy.RebateCeiling = t.RebateCeiling
	policy.Cess = t.Cess
	if len(t.Brackets) > 0 {
		policy.Brackets = append([]tax.Bracket(nil), t.Brackets...)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tax configuration: %w", err)
	}
	return policy, nil
}

func setDefaults(v *viper.Viper) {
	defaultPolicy := tax.OldRegime()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.grouping", constants.GroupingInternational)
	v.SetDefault("projection.includeTentative", true)
	v.SetDefault("tax.name", defaultPolicy.Label)
	v.SetDefault("tax.standardDeduction", defaultPolicy.StandardDeduction)
	v.SetDefault("tax.rebateCeiling", defaultPolicy.RebateCeiling)
	v.SetDefault("tax.cess", defaultPolicy.Cess)
	v.SetDefault("optimizer.floor", 0.0)
	v.SetDefault("optimizer.max", 0.0)
	v.SetDefault("optimizer.tolerance", defaultTolerance)
	v.SetDefault("optimizer.maxIterations", defaultMaxIterations)
}

// LoadConfiguration loads the configuration at configPath. An empty path
// falls back to household-plan.yaml in the working directory, and to
// built-in defaults when that file does not exist either. Environment
// variables such as HOUSEHOLD_PLAN_OUTPUT_FORMAT override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := configPath
	if path == "" {
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			path = constants.DefaultConfigFile
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	configuration.Optimizer.Normalize()

	if err := configuration.Validate(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Configuration {
	v := viper.New()
	setDefaults(v)

	var configuration Configuration
	_ = v.Unmarshal(&configuration)
	configuration.Optimizer.Normalize()
	return &configuration
}

// Validate reports every invalid setting.
func (conf *Configuration) Validate() error {
	if conf == nil {
		return errors.New("configuration cannot be nil")
	}
	var err error
	err = multierr.Append(err, validation.ValidateOutputFormat(conf.Output.Format))
	err = multierr.Append(err, validation.ValidateGrouping(conf.Output.Grouping))
	if _, taxErr := conf.Tax.Policy(); taxErr != nil {
		err = multierr.Append(err, taxErr)
	}
	err = multierr.Append(err, conf.Optimizer.Validate())
	return err
}
