// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/household-plan/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported
// projection export formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateTemplateFormat checks if a plan template can be written in format.
func ValidateTemplateFormat(format string) error {
	switch format {
	case constants.OutputFormatCSV, constants.OutputFormatJSON, constants.OutputFormatYAML:
		return nil
	}
	return fmt.Errorf("expected template format of %s, %s or %s, got %s",
		constants.OutputFormatCSV, constants.OutputFormatJSON, constants.OutputFormatYAML, format)
}

// ValidateGrouping checks if the number grouping style is supported.
func ValidateGrouping(grouping string) error {
	if grouping != constants.GroupingInternational && grouping != constants.GroupingIndian {
		return fmt.Errorf("expected grouping of %s or %s, got %s",
			constants.GroupingInternational, constants.GroupingIndian, grouping)
	}
	return nil
}
