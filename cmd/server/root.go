package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/metascore-lookup-service/internal/config"
	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
)

const (
	appName = "metascore-lookup-service"
	// appVersion is overridden at build time via -ldflags.
	appVersion = "dev"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "metascore-lookup",
		Short:         "Serve game score lookups from a periodically refreshed catalog",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newLookupCmd())
	return root
}

func newLogger(cfg config.Config, out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
		Output:  out,
	})
}
