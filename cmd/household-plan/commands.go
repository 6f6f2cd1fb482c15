package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iwvelando/household-plan/internal/forecast"
	"github.com/iwvelando/household-plan/internal/importer"
	"github.com/iwvelando/household-plan/internal/optimizer"
	"github.com/iwvelando/household-plan/internal/plan"
	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/format"
	"github.com/iwvelando/household-plan/pkg/output"
	"github.com/iwvelando/household-plan/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) projectCmd() *cobra.Command {
	var (
		overridesPath    string
		outputFormat     string
		excludeTentative bool
		outPath          string
	)

	cmd := &cobra.Command{
		Use:   "project <plan>",
		Short: "Project a plan year by year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "" {
				outputFormat = a.conf.Output.Format
			}
			outputFormat = output.NormalizeFormatName(outputFormat)
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			in, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			overrides, err := a.loadOverrides(overridesPath, in)
			if err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}

			opts := forecast.Options{
				IncludeTentative: a.conf.Projection.IncludeTentative && !excludeTentative,
				Overrides:        overrides,
			}
			report := output.NewReport(engine.Project(in, opts), overrides)
			report.Currency = in.Settings.Currency
			report.Grouping = a.conf.Output.Grouping

			var buf bytes.Buffer
			if err := output.Write(&buf, outputFormat, report); err != nil {
				return err
			}
			return a.writeOutput(outPath, buf.Bytes())
		},
	}

	cmd.Flags().StringVar(&overridesPath, "overrides", "", "JSON or YAML sidecar with growth rate and prepayment overrides")
	cmd.Flags().StringVar(&outputFormat, "format", "", "output format: pretty, csv, json (default from configuration)")
	cmd.Flags().BoolVar(&excludeTentative, "exclude-tentative", false, "leave tentative monthly expenses out of the projection")
	cmd.Flags().StringVar(&outPath, "out", "", "write output to a file instead of stdout")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan>",
		Short: "Check a plan and report warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.importer.LoadPlan(args[0])
			if err != nil {
				return err
			}
			warnings := plan.Warnings(in, a.now())
			fmt.Fprintf(a.out, "%s: valid plan for %d-%d\n", args[0], in.Settings.StartYear, in.EndYear())
			for _, w := range warnings {
				fmt.Fprintf(a.out, "warning: %s\n", w)
			}
			return nil
		},
	}
}

func (a *app) templateCmd() *cobra.Command {
	var (
		templateFormat string
		forPlan        string
		outPath        string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an example plan, or the default overrides sidecar for a plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.ValidateTemplateFormat(templateFormat); err != nil {
				return err
			}

			if forPlan == "" {
				data, err := a.importer.Template(templateFormat)
				if err != nil {
					return err
				}
				return a.writeOutput(outPath, data)
			}

			if templateFormat == constants.OutputFormatCSV {
				return fmt.Errorf("overrides sidecars are written as json or yaml, not csv")
			}
			in, err := a.loadPlan(forPlan)
			if err != nil {
				return err
			}
			data, err := importer.Encode(plan.SeedOverrides(in), templateFormat)
			if err != nil {
				return err
			}
			return a.writeOutput(outPath, data)
		},
	}

	cmd.Flags().StringVar(&templateFormat, "format", constants.OutputFormatCSV, "template format: csv, json, yaml")
	cmd.Flags().StringVar(&forPlan, "overrides", "", "emit the seeded overrides sidecar for this plan instead")
	cmd.Flags().StringVar(&outPath, "out", "", "write the template to a file instead of stdout")
	return cmd
}

func (a *app) optimizeCmd() *cobra.Command {
	var (
		overridesPath string
		floor         float64
		maxAmount     float64
		tolerance     float64
		asJSON        bool
		writePath     string
	)

	cmd := &cobra.Command{
		Use:   "optimize-prepayment <plan>",
		Short: "Find the largest yearly home loan prepayment that keeps savings above a floor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := a.conf.Optimizer
			if cmd.Flags().Changed("floor") {
				conf.Floor = floor
			}
			if cmd.Flags().Changed("max") {
				conf.Max = maxAmount
			}
			if cmd.Flags().Changed("tolerance") {
				conf.Tolerance = tolerance
			}

			in, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			overrides, err := a.loadOverrides(overridesPath, in)
			if err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			runner, err := optimizer.NewRunner(a.logger, engine, &conf)
			if err != nil {
				return err
			}

			result, err := runner.Run(in, forecast.Options{
				IncludeTentative: a.conf.Projection.IncludeTentative,
				Overrides:        overrides,
			})
			if err != nil {
				return err
			}

			if writePath != "" {
				data, err := importer.Encode(result.Overrides, formatFromExtension(writePath, constants.OutputFormatYAML))
				if err != nil {
					return err
				}
				if err := a.writeOutput(writePath, data); err != nil {
					return err
				}
			}

			if asJSON {
				data, err := json.MarshalIndent(result.Summary, "", "  ")
				if err != nil {
					return err
				}
				_, err = a.out.Write(append(data, '\n'))
				return err
			}
			a.renderSummary(in, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&overridesPath, "overrides", "", "JSON or YAML sidecar whose growth rates are kept during the search")
	cmd.Flags().Float64Var(&floor, "floor", 0, "minimum net savings left each year after the prepayment")
	cmd.Flags().Float64Var(&maxAmount, "max", 0, "largest yearly prepayment to consider (default the home loan principal)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "stop when the search range is narrower than this amount")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().StringVar(&writePath, "write-overrides", "", "save the resulting overrides sidecar (json or yaml by extension)")
	return cmd
}

func (a *app) renderSummary(in plan.Input, result *optimizer.Result) {
	s := result.Summary
	money := func(v float64) string {
		return format.Currency(v, in.Settings.Currency, a.conf.Output.Grouping)
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"Home loan prepayment", s.TargetName})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.AppendBulk([][]string{
		{"Yearly prepayment", money(s.Value)},
		{"Search maximum", money(s.Max)},
		{"Savings floor", money(s.Floor)},
		{"Lowest savings after prepayment", money(s.MinimumSavings)},
		{"Tightest year", strconv.Itoa(s.TightestYear)},
		{"Interest saved", money(s.InterestSaved)},
		{"Iterations", strconv.Itoa(s.Iterations)},
		{"Converged", strconv.FormatBool(s.Converged)},
		{"Floor met", strconv.FormatBool(s.Feasible())},
	})
	table.Render()

	for _, note := range s.Notes {
		fmt.Fprintf(a.out, "note: %s\n", note)
	}
	a.logger.Debug("rendered optimizer summary", zap.String("op", "main.renderSummary"))
}
