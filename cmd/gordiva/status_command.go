package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"gordiva/internal/config"
	"gordiva/internal/datastore"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show check-in progress for the loaded batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *datastore.Store, logger *slog.Logger) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}

				pendingXML := stats.Total - stats.XMLCreated
				pendingProxy := stats.XMLCreated - stats.ProxyCopied - stats.ProxyNotApplicable
				if pendingProxy < 0 {
					pendingProxy = 0
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderSummary("Metric", "Count", []summaryRow{
					countRow("Assets loaded", stats.Total),
					countRow("Descriptors written", stats.XMLCreated),
					countRow("Descriptors pending", pendingXML),
					countRow("Proxies copied", stats.ProxyCopied),
					countRow("Proxies not applicable", stats.ProxyNotApplicable),
					countRow("Proxies pending", pendingProxy),
				}))
				fmt.Fprintf(out, "Database: %s\n", store.Path())
				return nil
			})
		},
	}
}
