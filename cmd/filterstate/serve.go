package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ocp-advisor/filterstate/cmd"
	"github.com/ocp-advisor/filterstate/internal/colors"
	"github.com/ocp-advisor/filterstate/internal/config"
	"github.com/ocp-advisor/filterstate/internal/logging"
	"github.com/ocp-advisor/filterstate/internal/server"
	"github.com/spf13/cobra"
)

const serveCommandLong = `Serve the filter state over HTTP.

ROUTES:
    GET  /healthz
    GET  /api/v1/views
    GET  /api/v1/views/{view}
    GET  /api/v1/views/{view}/default
    PUT  /api/v1/views/{view}
    POST /api/v1/views/{view}/reset

USAGE:
    filterstate serve [--addr HOST:PORT] [--rate-limit N]`

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(client server.FiltersService) *cobra.Command {
	if client == nil {
		panic("NewServeCmd: client dependency cannot be nil")
	}

	var (
		addr      string
		rateLimit int
	)
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  serveCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := server.OptionsFromConfig()
			if cmd.Flags().Changed("addr") {
				opts.Addr = addr
			}
			if cmd.Flags().Changed("rate-limit") {
				opts.RequestsPerMinute = rateLimit
			}

			// Open storage before listening so a broken backend fails fast.
			if _, err := client.Summaries(); err != nil {
				return err
			}

			srv, err := server.New(opts, client, serveLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			colors.Info("listening on " + opts.Addr)
			return srv.Run(ctx)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server_addr)")
	serveCmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "Requests per minute per client IP, 0 disables")
	return serveCmd
}

// serveLogger sends request logs to the log file when file logging is on,
// and to w otherwise.
func serveLogger(w io.Writer) logging.Logger {
	if logging.CurrentLogFile() != "" {
		return logging.GetGlobal()
	}
	return logging.NewConsole(w, config.Get("logging_level", "info"))
}

func init() {
	cmd.RootCmd.AddCommand(NewServeCmd(client))
}
