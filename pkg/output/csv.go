package output

import (
	"bytes"
	"encoding/csv"

	"github.com/iwvelando/household-plan/pkg/format"
)

// CSVFormatter produces the transposed Metric-by-year export. Amounts carry
// two decimals with thousands grouping and are quoted by the CSV writer
// when they contain separators.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(yearHeaders(r.Years())); err != nil {
		return nil, err
	}
	for _, row := range r.Rows() {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.Metric)
		for _, cell := range row.Cells {
			record = append(record, csvCell(row.Kind, cell, r.Grouping))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvCell(kind RowKind, cell Cell, grouping string) string {
	if cell.Empty {
		return ""
	}
	if kind == RowRate {
		return format.Rate(cell.Value)
	}
	return format.Number(cell.Value, grouping)
}
