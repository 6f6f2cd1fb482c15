package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter renders a report to bytes.
type Formatter interface {
	Format(report *Report) ([]byte, error)
	Name() string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                   { return ff.ID }

var builtInFormatters = []Formatter{
	PrettyFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

var aliasMap = map[string]string{
	"table":   "pretty",
	"console": "pretty",
	"text":    "pretty",
	"export":  "csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// GetFormatterByName returns the registered formatter or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames returns the canonical formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// Write formats the report with the named formatter and writes it to w.
func Write(w io.Writer, name string, report *Report) error {
	f := GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("formatting %s output: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
