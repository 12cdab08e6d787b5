package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gordiva/internal/enrich"
	"gordiva/internal/export"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <merged-export.csv>",
		Short: "Filter and clean a merged export without touching the datastore",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			records, err := export.ReadRecords(args[0])
			if err != nil {
				return err
			}
			parsed, removed := export.ParseFilter(records, logger)

			enricher := enrich.NewEnricher(logger)
			cleaned, summary := enricher.Process(parsed)

			stamp := export.Stamp(time.Now())
			parsedPath := export.ParsedCSV(cfg.Paths.CSVDir, stamp)
			cleanedPath := export.CleanedCSV(cfg.Paths.CSVDir, stamp)
			if err := export.WriteRecords(parsedPath, parsed, true); err != nil {
				return err
			}
			if err := export.WriteRecords(cleanedPath, cleaned, false); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary("Field", "Value", []summaryRow{
				countRow("Input rows", len(records)),
				countRow("Parse removed", removed),
				countRow("Cleaned", summary.Processed),
				countRow("Dropped unmatched", summary.Dropped),
				countRow("Videos", summary.Videos),
				countRow("Archives", summary.Archives),
				countRow("Graphics", summary.Graphics),
				countRow("Documents", summary.Documents),
				countRow("Unclassified", summary.Unclassified),
				{label: "Cleaned CSV", value: cleanedPath},
			}))
			return nil
		},
	}
}

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <cleaned-export.csv>",
		Short: "Run the final back-fill pass over a cleaned export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			records, err := export.ReadRecords(args[0])
			if err != nil {
				return err
			}

			reconciler := enrich.NewReconciler(logger)
			summary := reconciler.Reconcile(records)

			finalPath := export.FinalCSV(cfg.Paths.CSVDir, export.Stamp(time.Now()))
			if err := export.WriteRecords(finalPath, records, false); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary("Field", "Value", []summaryRow{
				countRow("Videos visited", summary.Visited),
				countRow("Records changed", summary.Changed),
				countRow("Unresolved codecs", summary.UnresolvedCodec),
				{label: "Final CSV", value: finalPath},
			}))
			return nil
		},
	}
}
