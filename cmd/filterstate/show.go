package main

import (
	"github.com/ocp-advisor/filterstate/cmd"
	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/spf13/cobra"
)

type showClient interface {
	Show(view string) (filters.State, error)
	Default(view string) (filters.State, error)
}

const showCommandLong = `Print the current filter state of a view.

USAGE:
    filterstate show <view> [OPTIONS]

OPTIONS:
    -f, --format    Output format: json, toml or table (default from output_format)
    --default       Print the view's default state instead

EXAMPLES:
    filterstate show recsList
    filterstate show clustersList --default --format table`

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client showClient) *cobra.Command {
	if client == nil {
		panic("NewShowCmd: client dependency cannot be nil")
	}

	var (
		formatFlag  string
		showDefault bool
	)
	showCmd := &cobra.Command{
		Use:   "show <view>",
		Short: "Print a view's filter state",
		Long:  showCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := filters.ParseView(args[0])
			if err != nil {
				return err
			}
			formatter, err := resolveFormatter(formatFlag)
			if err != nil {
				return err
			}

			lookup := client.Show
			if showDefault {
				lookup = client.Default
			}
			state, err := lookup(view.String())
			if err != nil {
				return err
			}
			return formatter.FormatState(view, state, cmd.OutOrStdout())
		},
	}
	showCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json, toml or table")
	showCmd.Flags().BoolVar(&showDefault, "default", false, "Show the default state")
	return showCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewShowCmd(client))
}
