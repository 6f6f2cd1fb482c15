package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/household-plan/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	a := newApp(&buf)
	a.now = func() time.Time { return time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC) }

	root := a.rootCmd()
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return buf.String(), err
}

func writeTemplate(t *testing.T, format string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan."+format)
	_, err := run(t, "template", "--format", format, "--out", path)
	require.NoError(t, err)
	return path
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "household-plan-cli")
	if err != nil {
		panic(err)
	}
	// Keep a stray household-plan.yaml out of the tests.
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestTemplateCommand(t *testing.T) {
	out, err := run(t, "template")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "type,name,person,"))
	assert.Contains(t, out, "settings,")
	assert.Contains(t, out, "Home Loan")

	_, err = run(t, "template", "--format", "xml")
	assert.Error(t, err)
}

func TestProjectCommandCSV(t *testing.T) {
	planPath := writeTemplate(t, "json")

	out, err := run(t, "project", planPath, "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Metric,2026,2027,2028,2029,2030,2031,2032,2033,2034,2035", lines[0])
	assert.Equal(t, "1. Income,,,,,,,,,,", lines[1])
	assert.Contains(t, out, `Income - You (Gross),"1,900,000.00"`)
}

func TestProjectCommandJSONToFile(t *testing.T) {
	planPath := writeTemplate(t, "yaml")
	outPath := filepath.Join(t.TempDir(), "out", "projection.json")

	_, err := run(t, "project", planPath, "--format", "json", "--out", outPath, "--exclude-tentative")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var decoded struct {
		Results []map[string]float64 `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Results, 10)
	assert.Equal(t, 2026.0, decoded.Results[0]["year"])
}

func TestProjectCommandWithOverrides(t *testing.T) {
	planPath := writeTemplate(t, "csv")
	overridesPath := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(overridesPath, []byte(`{"homeLoanPrepayment": [0, 250000]}`), 0o600))

	out, err := run(t, "project", planPath, "--format", "export", "--overrides", overridesPath)
	require.NoError(t, err)
	assert.Contains(t, out, `Home Loan Prepayment,0.00,"250,000.00",0.00`)
}

func TestProjectCommandErrors(t *testing.T) {
	planPath := writeTemplate(t, "json")

	_, err := run(t, "project", planPath, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected output format")

	_, err = run(t, "project")
	assert.Error(t, err)

	_, err = run(t, "project", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	planPath := writeTemplate(t, "yaml")

	out, err := run(t, "validate", planPath)
	require.NoError(t, err)
	assert.Contains(t, out, "valid plan for 2026-2035")
	assert.Contains(t, out, "warning: ")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"settings": {"horizonYears": 0}, "loans": [{"name": "", "tenureMonths": 0}]}`), 0o600))
	_, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings.horizonYears")
	assert.Contains(t, err.Error(), "loans[0].tenureMonths")
}

func TestTemplateOverridesCommand(t *testing.T) {
	planPath := writeTemplate(t, "json")

	out, err := run(t, "template", "--overrides", planPath, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "growthRatesYou:")
	assert.Contains(t, out, "homeLoanPrepayment:")

	_, err = run(t, "template", "--overrides", planPath, "--format", "csv")
	assert.Error(t, err)
}

func TestOptimizeCommand(t *testing.T) {
	planPath := writeTemplate(t, "json")
	sidecar := filepath.Join(t.TempDir(), "optimized.yaml")

	out, err := run(t, "optimize-prepayment", planPath, "--json", "--max", "500000", "--write-overrides", sidecar)
	require.NoError(t, err)

	var summary struct {
		TargetName string  `json:"targetName"`
		Max        float64 `json:"max"`
		Converged  bool    `json:"converged"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "Home Loan", summary.TargetName)
	assert.Equal(t, 500000.0, summary.Max)

	data, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	assert.Contains(t, string(data), "homeLoanPrepayment:")

	out, err = run(t, "optimize-prepayment", planPath, "--max", "500000")
	require.NoError(t, err)
	assert.Contains(t, out, "Yearly prepayment")
	assert.Contains(t, out, "Tightest year")
	assert.Contains(t, out, "Floor met")
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		conf     config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "defaults", conf: config.LoggingConfig{}},
		{name: "console debug", conf: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "override wins", conf: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "invalid level", conf: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "invalid format", conf: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.conf, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestExecuteLogsFailureToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "household-plan.log")
	confPath := filepath.Join(dir, "config.yaml")
	conf := "logging:\n  level: info\n  format: json\n  outputFile: " + logPath + "\n"
	require.NoError(t, os.WriteFile(confPath, []byte(conf), 0644))

	var buf bytes.Buffer
	code := newApp(&buf).execute([]string{"--config", confPath, "project", filepath.Join(dir, "missing.csv")})
	assert.Equal(t, 1, code)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "command failed")
	assert.Contains(t, string(data), `"op":"main"`)

	assert.Equal(t, 0, newApp(&buf).execute([]string{"--config", confPath, "template"}))
}
