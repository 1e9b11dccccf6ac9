// Package cmd holds the root command shared by the filterstate binary.
package cmd

import (
	"strconv"

	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/ocp-advisor/filterstate/internal/config"
	"github.com/ocp-advisor/filterstate/internal/logging"
	"github.com/ocp-advisor/filterstate/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "filterstate",
	Short: "Saved table filters for the advisor views.",
	Long: `Keeps the filter, sort and paging state of the advisor tables
(affectedClusters, recsList, clustersList, clusterRules) and resets them to
their defaults without losing the user's sort order.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

var (
	debugFlag bool
	quietFlag bool
)

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only print errors")
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	if cmd.Flags().Changed("debug") {
		config.Set("debug", strconv.FormatBool(debugFlag))
	}
	if cmd.Flags().Changed("quiet") {
		config.Set("quiet", strconv.FormatBool(quietFlag))
	}
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	return logging.InitGlobal()
}

func teardown(cmd *cobra.Command, args []string) error {
	return logging.ShutdownGlobal()
}
