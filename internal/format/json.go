package format

import (
	"encoding/json"
	"io"

	"github.com/ocp-advisor/filterstate/internal/app"
	"github.com/ocp-advisor/filterstate/internal/filters"
)

// JSONFormatter writes the same JSON the HTTP API serves.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) FormatState(view filters.View, state filters.State, w io.Writer) error {
	return encodeJSON(w, state)
}

func (f *JSONFormatter) FormatSummaries(summaries []app.ViewSummary, w io.Writer) error {
	return encodeJSON(w, summaries)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
