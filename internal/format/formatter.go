// Package format renders filter state for the CLI.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/ocp-advisor/filterstate/internal/app"
	"github.com/ocp-advisor/filterstate/internal/filters"
)

// Formatter writes view records and listings in one output style.
type Formatter interface {
	// FormatState writes the record of a single view.
	FormatState(view filters.View, state filters.State, w io.Writer) error
	// FormatSummaries writes the list of views.
	FormatSummaries(summaries []app.ViewSummary, w io.Writer) error
}

// FormatterType names an output style.
type FormatterType string

const (
	// FormatterTypeJSON writes indented JSON.
	FormatterTypeJSON FormatterType = "json"
	// FormatterTypeTOML writes a TOML document keyed by view.
	FormatterTypeTOML FormatterType = "toml"
	// FormatterTypeTable writes a bordered table.
	FormatterTypeTable FormatterType = "table"
)

// ParseFormatterType accepts json, toml and table in any case.
func ParseFormatterType(raw string) (FormatterType, error) {
	switch FormatterType(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatterTypeJSON:
		return FormatterTypeJSON, nil
	case FormatterTypeTOML:
		return FormatterTypeTOML, nil
	case FormatterTypeTable:
		return FormatterTypeTable, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected json, toml or table)", raw)
	}
}

// NewFormatter creates a formatter of the given type. Unknown types get JSON.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTOML:
		return NewTOMLFormatter()
	case FormatterTypeTable:
		return NewTableFormatter()
	default:
		return NewJSONFormatter()
	}
}
