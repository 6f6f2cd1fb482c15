package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iwvelando/household-plan/internal/config"
	"github.com/iwvelando/household-plan/internal/forecast"
	"github.com/iwvelando/household-plan/internal/importer"
	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded configuration and built the logger.
type app struct {
	out      io.Writer
	now      func() time.Time
	confPath string
	logLevel string

	conf     *config.Configuration
	logger   *zap.Logger
	importer *importer.Importer
}

func newApp(out io.Writer) *app {
	return &app{out: out, now: time.Now}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "household-plan",
		Short:         "Multi-year household income, expense, loan and savings projection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVar(&a.confPath, "config", "", "path to configuration file (default household-plan.yaml when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(a.projectCmd(), a.validateCmd(), a.templateCmd(), a.optimizeCmd())
	return root
}

func (a *app) setup() error {
	conf, err := config.LoadConfiguration(a.confPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.conf = conf
	a.logger = logger
	a.importer = importer.New(logger).WithClock(a.now)
	return nil
}

func (a *app) engine() (*forecast.Engine, error) {
	policy, err := a.conf.Tax.Policy()
	if err != nil {
		return nil, err
	}
	return forecast.NewEngine(a.logger, policy), nil
}

// loadPlan reads and validates a plan, logging any advisory warnings.
func (a *app) loadPlan(path string) (plan.Input, error) {
	in, err := a.importer.LoadPlan(path)
	if err != nil {
		return plan.Input{}, err
	}
	for _, warning := range plan.Warnings(in, a.now()) {
		a.logger.Warn("plan warning: "+warning,
			zap.String("op", "main.loadPlan"),
			zap.String("plan", path),
		)
	}
	return in, nil
}

// loadOverrides reads an optional sidecar and fits it to the plan horizon.
func (a *app) loadOverrides(path string, in plan.Input) (plan.Overrides, error) {
	if path == "" {
		return plan.SeedOverrides(in), nil
	}
	o, err := a.importer.LoadOverrides(path)
	if err != nil {
		return plan.Overrides{}, err
	}
	return o.Fit(in), nil
}

// writeOutput writes data to path, or to the command output when path is
// empty or "-".
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.out.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Info(fmt.Sprintf("wrote %s", path), zap.String("op", "main.writeOutput"))
	return nil
}

func formatFromExtension(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".csv":
		return "csv"
	}
	return fallback
}
