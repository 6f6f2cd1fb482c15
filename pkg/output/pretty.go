package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/iwvelando/household-plan/pkg/constants"
	"github.com/iwvelando/household-plan/pkg/format"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormatter renders the report as a console table.
type PrettyFormatter struct{}

func (PrettyFormatter) Name() string { return "pretty" }

func (PrettyFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	years := r.Years()
	if len(years) == 0 {
		fmt.Fprintln(&buf, "No projection years")
		return buf.Bytes(), nil
	}
	fmt.Fprintf(&buf, "Household projection %d-%d (%d years, %s)\n\n", years[0], years[len(years)-1], len(years), r.currencyCode())

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(yearHeaders(years))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	alignments := make([]int, len(years)+1)
	alignments[0] = tablewriter.ALIGN_LEFT
	for i := 1; i < len(alignments); i++ {
		alignments[i] = tablewriter.ALIGN_RIGHT
	}
	table.SetColumnAlignment(alignments)

	for _, row := range r.Rows() {
		record := make([]string, 0, len(row.Cells)+1)
		metric := row.Metric
		if row.Kind == RowGroup {
			metric = strings.ToUpper(metric)
		} else if !row.IsHeading() {
			metric = "  " + metric
		}
		record = append(record, metric)
		for _, cell := range row.Cells {
			record = append(record, prettyCell(row.Kind, cell, r))
		}
		table.Append(record)
	}
	table.Render()

	last := r.Output.Results[len(r.Output.Results)-1]
	fmt.Fprintf(&buf, "\nCorpus at end of %d: %s\n", last.Year, format.Currency(last.CorpusEnd, r.currencyCode(), r.Grouping))
	cumulative := 0.0
	for _, res := range r.Output.Results {
		cumulative += res.NetSavings
	}
	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(&buf, "Cumulative net savings: %s%.2f\n", format.Symbol(r.currencyCode()), cumulative)
	return buf.Bytes(), nil
}

func (r *Report) currencyCode() string {
	if r.Currency == "" {
		return constants.DefaultCurrency
	}
	return r.Currency
}

func prettyCell(kind RowKind, cell Cell, r *Report) string {
	if cell.Empty {
		return ""
	}
	if kind == RowRate {
		return format.Rate(cell.Value) + "%"
	}
	return format.Number(cell.Value, r.Grouping)
}
