package format

import (
	"io"

	"github.com/ocp-advisor/filterstate/internal/app"
	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/pelletier/go-toml/v2"
)

// TOMLFormatter writes records in the layout of the toml storage file, so
// output can be pasted into it.
type TOMLFormatter struct{}

// NewTOMLFormatter creates a TOMLFormatter.
func NewTOMLFormatter() *TOMLFormatter {
	return &TOMLFormatter{}
}

func (f *TOMLFormatter) FormatState(view filters.View, state filters.State, w io.Writer) error {
	return toml.NewEncoder(w).Encode(map[string]filters.State{view.String(): state})
}

type summaryDoc struct {
	Views []app.ViewSummary `toml:"views"`
}

func (f *TOMLFormatter) FormatSummaries(summaries []app.ViewSummary, w io.Writer) error {
	return toml.NewEncoder(w).Encode(summaryDoc{Views: summaries})
}
