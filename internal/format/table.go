package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ocp-advisor/filterstate/internal/app"
	"github.com/ocp-advisor/filterstate/internal/filters"
)

const unsetValue = "-"

// TableFormatter renders records as FIELD/VALUE tables.
type TableFormatter struct {
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// NewTableFormatter creates a TableFormatter with bold blue headers.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")).Padding(0, 1),
		cellStyle:   lipgloss.NewStyle().Padding(0, 1),
	}
}

func (f *TableFormatter) FormatState(view filters.View, state filters.State, w io.Writer) error {
	rows := [][]string{
		{"limit", formatInt(state.Limit)},
		{"offset", formatInt(state.Offset)},
		{"sortIndex", formatInt(state.SortIndex)},
		{"sortDirection", formatString(state.SortDirection.String())},
		{"text", formatString(state.Text)},
		{"version", formatList(state.Version)},
		{"impacting", formatList(state.Impacting)},
		{"hits", formatList(state.Hits)},
		{"rule_status", formatString(state.RuleStatus)},
	}
	_, err := fmt.Fprintln(w, f.render([]string{view.String(), "VALUE"}, rows))
	return err
}

func (f *TableFormatter) FormatSummaries(summaries []app.ViewSummary, w io.Writer) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		status := "default"
		if s.Modified {
			status = "modified"
		}
		rows = append(rows, []string{s.View.String(), status})
	}
	_, err := fmt.Fprintln(w, f.render([]string{"VIEW", "STATUS"}, rows))
	return err
}

func (f *TableFormatter) render(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return f.headerStyle
			}
			return f.cellStyle
		})
	return t.String()
}

func formatInt(p *int) string {
	if p == nil {
		return unsetValue
	}
	return strconv.Itoa(*p)
}

func formatString(s string) string {
	if s == "" {
		return unsetValue
	}
	return s
}

func formatList(values []string) string {
	if len(values) == 0 {
		return unsetValue
	}
	return strings.Join(values, ", ")
}
