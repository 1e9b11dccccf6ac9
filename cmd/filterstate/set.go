package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ocp-advisor/filterstate/cmd"
	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/spf13/cobra"
)

type setClient interface {
	Show(view string) (filters.State, error)
	Replace(ctx context.Context, view string, next filters.State) (filters.State, error)
}

const setCommandLong = `Replace the filter state of a view.

The new record is read as JSON from --file (use - for stdin), or built from
the current record with the given flags applied. Fields named in --unset are
removed from the record.

USAGE:
    filterstate set <view> [OPTIONS]

OPTIONS:
    --file PATH            Read the whole record from a JSON file, - for stdin
    --limit N              Page size
    --offset N             Rows skipped
    --sort-index N         Sorted column
    --sort-direction DIR   asc or desc
    --text S               Free-text filter
    --version V            Version filter (repeatable, comma separated)
    --impacting V          Impacting filter (repeatable)
    --hits V               Hits filter (repeatable)
    --rule-status S        enabled, disabled or all
    --unset FIELD          Remove a field (repeatable)

EXAMPLES:
    filterstate set recsList --limit 20 --offset 40
    filterstate set clustersList --hits critical,important --sort-direction asc
    echo '{"sortIndex":2}' | filterstate set clusterRules --file -`

var settableFields = []string{
	"limit", "offset", "sortIndex", "sortDirection", "text",
	"version", "impacting", "hits", "rule_status",
}

type setOptions struct {
	file          string
	limit         int
	offset        int
	sortIndex     int
	sortDirection string
	text          string
	version       []string
	impacting     []string
	hits          []string
	ruleStatus    string
	unset         []string
	format        string
}

// NewSetCmd creates the set command with explicit dependencies.
func NewSetCmd(client setClient) *cobra.Command {
	if client == nil {
		panic("NewSetCmd: client dependency cannot be nil")
	}

	opts := &setOptions{}
	setCmd := &cobra.Command{
		Use:   "set <view>",
		Short: "Replace a view's filter state",
		Long:  setCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := filters.ParseView(args[0])
			if err != nil {
				return err
			}
			formatter, err := resolveFormatter(opts.format)
			if err != nil {
				return err
			}

			next, err := buildState(cmd, client, view, opts)
			if err != nil {
				return err
			}
			state, err := client.Replace(cmd.Context(), view.String(), next)
			if err != nil {
				return fmt.Errorf("set: %w", err)
			}
			colors.Success(fmt.Sprintf("updated %s", view))
			return formatter.FormatState(view, state, cmd.OutOrStdout())
		},
	}

	flags := setCmd.Flags()
	flags.StringVar(&opts.file, "file", "", "Read the record from a JSON file (- for stdin)")
	flags.IntVar(&opts.limit, "limit", 0, "Page size")
	flags.IntVar(&opts.offset, "offset", 0, "Rows skipped")
	flags.IntVar(&opts.sortIndex, "sort-index", 0, "Sorted column")
	flags.StringVar(&opts.sortDirection, "sort-direction", "", "Sort direction: asc or desc")
	flags.StringVar(&opts.text, "text", "", "Free-text filter")
	flags.StringSliceVar(&opts.version, "version", nil, "Version filter values")
	flags.StringSliceVar(&opts.impacting, "impacting", nil, "Impacting filter values")
	flags.StringSliceVar(&opts.hits, "hits", nil, "Hits filter values")
	flags.StringVar(&opts.ruleStatus, "rule-status", "", "Rule status filter")
	flags.StringSliceVar(&opts.unset, "unset", nil, "Fields to remove: "+strings.Join(settableFields, ", "))
	flags.StringVarP(&opts.format, "format", "f", "", "Output format: json, toml or table")
	return setCmd
}

func buildState(cmd *cobra.Command, client setClient, view filters.View, opts *setOptions) (filters.State, error) {
	flags := cmd.Flags()
	fieldFlags := []string{"limit", "offset", "sort-index", "sort-direction", "text", "version", "impacting", "hits", "rule-status", "unset"}

	if opts.file != "" {
		for _, name := range fieldFlags {
			if flags.Changed(name) {
				return filters.State{}, fmt.Errorf("set: --file cannot be combined with --%s", name)
			}
		}
		return readStateFile(opts.file, cmd.InOrStdin())
	}

	state, err := client.Show(view.String())
	if err != nil {
		return filters.State{}, err
	}

	if flags.Changed("limit") {
		state.Limit = filters.Int(opts.limit)
	}
	if flags.Changed("offset") {
		state.Offset = filters.Int(opts.offset)
	}
	if flags.Changed("sort-index") {
		state.SortIndex = filters.Int(opts.sortIndex)
	}
	if flags.Changed("sort-direction") {
		dir, err := filters.ParseSortDirection(opts.sortDirection)
		if err != nil {
			return filters.State{}, err
		}
		state.SortDirection = dir
	}
	if flags.Changed("text") {
		state.Text = opts.text
	}
	if flags.Changed("version") {
		state.Version = opts.version
	}
	if flags.Changed("impacting") {
		state.Impacting = opts.impacting
	}
	if flags.Changed("hits") {
		state.Hits = opts.hits
	}
	if flags.Changed("rule-status") {
		state.RuleStatus = opts.ruleStatus
	}

	for _, field := range opts.unset {
		if err := unsetField(&state, field); err != nil {
			return filters.State{}, err
		}
	}
	return state, nil
}

func unsetField(state *filters.State, field string) error {
	switch strings.TrimSpace(field) {
	case "limit":
		state.Limit = nil
	case "offset":
		state.Offset = nil
	case "sortIndex", "sort-index":
		state.SortIndex = nil
	case "sortDirection", "sort-direction":
		state.SortDirection = ""
	case "text":
		state.Text = ""
	case "version":
		state.Version = nil
	case "impacting":
		state.Impacting = nil
	case "hits":
		state.Hits = nil
	case "rule_status", "rule-status":
		state.RuleStatus = ""
	default:
		return fmt.Errorf("set: unknown field %q (expected one of %s)", field, strings.Join(settableFields, ", "))
	}
	return nil
}

func readStateFile(path string, stdin io.Reader) (filters.State, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return filters.State{}, fmt.Errorf("set: read %s: %w", path, err)
	}

	var state filters.State
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&state); err != nil {
		return filters.State{}, fmt.Errorf("set: parse %s: %w", path, err)
	}
	if err := state.NormalizeSortDirection(); err != nil {
		return filters.State{}, fmt.Errorf("set: %s: %w", path, err)
	}
	return state, nil
}

func init() {
	cmd.RootCmd.AddCommand(NewSetCmd(client))
}
