package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gordiva/internal/config"
	"gordiva/internal/datastore"
	"gordiva/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var skipHandoff bool

	cmd := &cobra.Command{
		Use:   "run <gorilla-export.csv> <diva-export.csv>",
		Short: "Run the full migration pipeline on a pair of exports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *datastore.Store, logger *slog.Logger) error {
				runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer cancel()

				runner := pipeline.NewRunner(cfg, store, logger)
				result, err := runner.Run(runCtx, pipeline.Options{
					GorillaCSV:   args[0],
					DivaCSV:      args[1],
					CheckinLimit: limit,
					SkipHandoff:  skipHandoff,
				})
				if result != nil {
					fmt.Fprintln(cmd.OutOrStdout(), renderRunResult(result))
				}
				return err
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum descriptors to write this run (0 uses the configured default)")
	cmd.Flags().BoolVar(&skipHandoff, "skip-handoff", false, "Stop after persisting the cleaned batch")
	return cmd
}

func renderRunResult(result *pipeline.Result) string {
	rows := []summaryRow{
		{label: "Run ID", value: result.RunID},
		{label: "Batch stamp", value: result.Stamp},
		countRow("Merged rows", result.Merge.Total()),
		countRow("Matched", result.Merge.Matched),
		countRow("Gorilla only", result.Merge.LeftOnly),
		countRow("Diva only", result.Merge.RightOnly),
		countRow("Parse removed", result.Removed),
		countRow("Cleaned", result.Clean.Processed),
		countRow("Dropped unmatched", result.Clean.Dropped),
		countRow("Reconciled changes", result.Reconcile.Changed),
		countRow("Loaded to datastore", result.Loaded),
		countRow("Descriptors written", result.Checkin.Written),
		countRow("Proxies copied", result.Proxy.Copied),
		{label: "Elapsed", value: result.Elapsed.Round(timeRounding).String()},
	}
	if result.FinalCSV != "" {
		rows = append(rows, summaryRow{label: "Final CSV", value: result.FinalCSV})
	}
	return renderSummary("Field", "Value", rows)
}
