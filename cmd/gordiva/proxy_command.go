package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"gordiva/internal/config"
	"gordiva/internal/crosscheck"
	"gordiva/internal/datastore"
	"gordiva/internal/proxy"
)

func newProxyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "proxy",
		Short: "Stage proxies and descriptors for checked-in assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *datastore.Store, logger *slog.Logger) error {
				stager := proxy.NewStager(store, cfg, logger)
				summary, err := stager.Run(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderSummary("Field", "Value", []summaryRow{
					countRow("Proxies copied", summary.Copied),
					countRow("Not applicable", summary.NotApplicable),
					countRow("Missing", summary.Missing),
				}))
				return nil
			})
		},
	}
}

func newCrosscheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "crosscheck",
		Short: "Reconcile datastore flags against the check-in and proxy trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *datastore.Store, logger *slog.Logger) error {
				checker := crosscheck.NewChecker(store, cfg, logger)
				summary, err := checker.Run(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderSummary("Field", "Value", []summaryRow{
					countRow("Descriptors seen", summary.DescriptorsSeen),
					countRow("Proxies seen", summary.ProxiesSeen),
					countRow("XML flags backfilled", summary.XMLUpdated),
					countRow("Proxy flags backfilled", summary.ProxyUpdated),
					countRow("Unknown files", summary.Unknown),
				}))
				return nil
			})
		},
	}
}
