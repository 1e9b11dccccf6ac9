package main

import (
	"github.com/ocp-advisor/filterstate/cmd"
	"github.com/ocp-advisor/filterstate/internal/app"
	"github.com/spf13/cobra"
)

type viewsClient interface {
	Summaries() ([]app.ViewSummary, error)
}

const viewsCommandLong = `List the known views and whether each differs from its default.

USAGE:
    filterstate views [--format json|toml|table]

EXAMPLES:
    filterstate views --format table`

// NewViewsCmd creates the views command with explicit dependencies.
func NewViewsCmd(client viewsClient) *cobra.Command {
	if client == nil {
		panic("NewViewsCmd: client dependency cannot be nil")
	}

	var formatFlag string
	viewsCmd := &cobra.Command{
		Use:   "views",
		Short: "List views",
		Long:  viewsCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := resolveFormatter(formatFlag)
			if err != nil {
				return err
			}
			summaries, err := client.Summaries()
			if err != nil {
				return err
			}
			return formatter.FormatSummaries(summaries, cmd.OutOrStdout())
		},
	}
	viewsCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json, toml or table")
	return viewsCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewViewsCmd(client))
}
