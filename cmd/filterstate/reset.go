package main

import (
	"context"
	"fmt"

	"github.com/ocp-advisor/filterstate/cmd"
	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/spf13/cobra"
)

type resetClient interface {
	Reset(ctx context.Context, view string, current *filters.State) (filters.State, error)
	ResetAll(ctx context.Context) error
}

const resetCommandLong = `Reset a view's filters to their defaults.

The sort column and direction are kept. Paging is kept when the view has a
page size; otherwise it returns to the default.

USAGE:
    filterstate reset <view> [OPTIONS]
    filterstate reset --all [OPTIONS]

OPTIONS:
    --all      Reset every view
    --force    Reset without confirmation
    -h, --help Show this help

EXAMPLES:
    filterstate reset recsList
    filterstate reset --all --force`

// NewResetCmd creates the reset command with explicit dependencies.
func NewResetCmd(client resetClient) *cobra.Command {
	if client == nil {
		panic("NewResetCmd: client dependency cannot be nil")
	}

	var (
		all    bool
		force  bool
		format string
	)
	resetCmd := &cobra.Command{
		Use:   "reset [view]",
		Short: "Reset filters to defaults",
		Long:  resetCommandLong,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("reset: --all does not take a view")
			}
			if !all && len(args) != 1 {
				return fmt.Errorf("reset: expected a view or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				if !skipConfirmation(force) && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset the filters of every view?") {
					colors.Info("Operation cancelled")
					return nil
				}
				if err := client.ResetAll(cmd.Context()); err != nil {
					return fmt.Errorf("reset: %w", err)
				}
				colors.Success("reset all views")
				return nil
			}

			view, err := filters.ParseView(args[0])
			if err != nil {
				return err
			}
			formatter, err := resolveFormatter(format)
			if err != nil {
				return err
			}
			if !skipConfirmation(force) && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Reset the filters of %s?", view)) {
				colors.Info("Operation cancelled")
				return nil
			}

			state, err := client.Reset(cmd.Context(), view.String(), nil)
			if err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			colors.Success(fmt.Sprintf("reset %s", view))
			return formatter.FormatState(view, state, cmd.OutOrStdout())
		},
	}
	resetCmd.Flags().BoolVar(&all, "all", false, "Reset every view")
	resetCmd.Flags().BoolVar(&force, "force", false, "Reset without confirmation")
	resetCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, toml or table")
	return resetCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewResetCmd(client))
}
