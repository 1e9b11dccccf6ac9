package main

import (
	"encoding/json"
	"fmt"

	"github.com/ocp-advisor/filterstate/cmd"
	"github.com/ocp-advisor/filterstate/internal/version"
	"github.com/spf13/cobra"
)

type versionClient interface {
	Version() string
}

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	var asJSON bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of filterstate.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.Get())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "filterstate version %s\n", client.Version())
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Print build metadata as JSON")
	return versionCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewVersionCmd(client))
}
