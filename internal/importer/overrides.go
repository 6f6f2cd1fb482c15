package importer

import (
	"fmt"
	"os"

	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/spf13/viper"
)

// LoadOverrides reads a JSON or YAML sidecar holding growthRatesYou,
// growthRatesWife and homeLoanPrepayment sequences.
func (im *Importer) LoadOverrides(path string) (plan.Overrides, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return plan.Overrides{}, err
	}
	if format == constants.OutputFormatCSV {
		return plan.Overrides{}, fmt.Errorf("overrides %s: CSV is not supported, use JSON or YAML", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return plan.Overrides{}, fmt.Errorf("opening overrides %s: %w", path, err)
	}
	defer f.Close()

	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(f); err != nil {
		return plan.Overrides{}, fmt.Errorf("decoding overrides %s: %w", path, err)
	}

	var o plan.Overrides
	if err := v.Unmarshal(&o); err != nil {
		return plan.Overrides{}, fmt.Errorf("unable to decode overrides %s into struct: %w", path, err)
	}
	return o, nil
}

// LoadOverrides reads a sidecar with a default importer.
func LoadOverrides(path string) (plan.Overrides, error) {
	return New(nil).LoadOverrides(path)
}
