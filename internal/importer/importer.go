// Package importer loads household plans and override sidecars from CSV,
// JSON and YAML files.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/constants"
	"go.uber.org/zap"
)

// Importer reads plans from disk. The current year is used as the default
// start year for plans that omit one.
type Importer struct {
	logger *zap.Logger
	now    func() time.Time
}

// New creates an importer. A nil logger disables logging.
func New(logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{logger: logger, now: time.Now}
}

// WithClock returns a copy of the importer that reads the time from now.
func (im *Importer) WithClock(now func() time.Time) *Importer {
	cp := *im
	cp.now = now
	return &cp
}

func (im *Importer) currentYear() int {
	return im.now().Year()
}

// LoadPlan reads a plan file, choosing the parser by extension, and
// validates the result.
func (im *Importer) LoadPlan(path string) (plan.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return plan.Input{}, fmt.Errorf("opening plan %s: %w", path, err)
	}
	defer f.Close()

	format, err := formatFromPath(path)
	if err != nil {
		return plan.Input{}, err
	}

	var in plan.Input
	if format == constants.OutputFormatCSV {
		in, err = im.ParseCSV(f)
	} else {
		in, err = im.ParseDocument(f, format)
	}
	if err != nil {
		return plan.Input{}, fmt.Errorf("reading plan %s: %w", path, err)
	}

	if err := plan.Validate(in); err != nil {
		return plan.Input{}, fmt.Errorf("invalid plan %s: %w", path, err)
	}

	im.logger.Debug(fmt.Sprintf("loaded plan %s", path),
		zap.String("op", "importer.LoadPlan"),
		zap.String("format", format),
		zap.Int("startYear", in.Settings.StartYear),
		zap.Int("horizonYears", in.Settings.HorizonYears),
		zap.Int("loans", len(in.Loans)),
	)
	return in, nil
}

// LoadPlan reads and validates a plan with a default importer.
func LoadPlan(path string) (plan.Input, error) {
	return New(nil).LoadPlan(path)
}

func formatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return constants.OutputFormatCSV, nil
	case ".json":
		return constants.OutputFormatJSON, nil
	case ".yaml", ".yml":
		return constants.OutputFormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported plan file extension %q (expected .csv, .json, .yaml or .yml)", ext)
	}
}
