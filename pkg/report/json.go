package report

import (
	"encoding/json"
	"io"
)

// JSONReporter renders a run as a JSON document.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a JSON reporter. When pretty is true,
// output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// Extension returns "json".
func (r *JSONReporter) Extension() string {
	return "json"
}

// WriteReport renders the report to w.
func (r *JSONReporter) WriteReport(w io.Writer, data Data) error {
	encoder := json.NewEncoder(w)
	if r.pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}
