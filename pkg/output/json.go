package output

import "encoding/json"

// JSONFormatter serializes the projection output as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r.Output, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
