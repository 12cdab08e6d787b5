package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gordiva/internal/checkin"
	"gordiva/internal/config"
	"gordiva/internal/datastore"
)

func newCheckinCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Write check-in descriptors for pending assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *datastore.Store, logger *slog.Logger) error {
				effective := limit
				if effective == 0 && !cmd.Flags().Changed("limit") {
					prompted, err := promptBatchSize(cmd, cfg.Checkin.DefaultLimit)
					if err != nil {
						return err
					}
					effective = prompted
				}

				writer := checkin.NewWriter(store, cfg, logger)
				summary, err := writer.Run(cmd.Context(), effective)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderSummary("Field", "Value", []summaryRow{
					countRow("Descriptors written", summary.Written),
					countRow("Skipped", summary.Skipped),
				}))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum descriptors to write (0 uses the configured default)")
	return cmd
}

// promptBatchSize asks for a batch size when running interactively. A
// non-interactive stdin or an empty answer falls back to the default.
func promptBatchSize(cmd *cobra.Command, fallback int) (int, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return fallback, nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "How many descriptors should this batch write? [%d]: ", fallback)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return fallback, nil
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(answer)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid batch size %q", answer)
	}
	return parsed, nil
}
