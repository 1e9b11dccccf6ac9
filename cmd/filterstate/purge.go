package main

import (
	"context"
	"fmt"

	"github.com/ocp-advisor/filterstate/cmd"
	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/spf13/cobra"
)

type purgeClient interface {
	Purge(ctx context.Context) error
}

const purgeCommandLong = `Forget every saved filter state. All views return to their defaults.

USAGE:
    filterstate purge [--force]`

// NewPurgeCmd creates the purge command with explicit dependencies.
func NewPurgeCmd(client purgeClient) *cobra.Command {
	if client == nil {
		panic("NewPurgeCmd: client dependency cannot be nil")
	}

	var force bool
	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Forget saved filter state",
		Long:  purgeCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipConfirmation(force) && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Forget all saved filters?") {
				colors.Info("Operation cancelled")
				return nil
			}
			if err := client.Purge(cmd.Context()); err != nil {
				return fmt.Errorf("purge: %w", err)
			}
			colors.Success("saved filters purged")
			return nil
		},
	}
	purgeCmd.Flags().BoolVar(&force, "force", false, "Purge without confirmation")
	return purgeCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewPurgeCmd(client))
}
