// Package pipeline runs the batch flow end to end: merge the two exports,
// filter, clean, reconcile, persist, then hand qualifying assets to
// check-in and proxy staging.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gordiva/internal/asset"
	"gordiva/internal/checkin"
	"gordiva/internal/config"
	"gordiva/internal/datastore"
	"gordiva/internal/enrich"
	"gordiva/internal/export"
	"gordiva/internal/logging"
	"gordiva/internal/merge"
	"gordiva/internal/proxy"
)

// Options selects the inputs and scope of one run.
type Options struct {
	// GorillaCSV and DivaCSV are the two source exports to merge.
	GorillaCSV string
	DivaCSV    string

	// CheckinLimit caps descriptors written this run. Zero means the
	// configured default.
	CheckinLimit int

	// SkipHandoff stops after persisting the cleaned batch, leaving
	// check-in and proxy staging for separate invocations.
	SkipHandoff bool
}

// Result aggregates per-step summaries for reporting.
type Result struct {
	RunID     string
	Stamp     string
	Merge     merge.Summary
	Removed   int
	Clean     enrich.Summary
	Reconcile enrich.ReconcileSummary
	Loaded    int
	Checkin   checkin.Summary
	Proxy     proxy.Summary
	FinalCSV  string
	Elapsed   time.Duration
}

// Runner executes the pipeline against one datastore.
type Runner struct {
	cfg    *config.Config
	store  *datastore.Store
	logger *slog.Logger
}

func NewRunner(cfg *config.Config, store *datastore.Store, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		store:  store,
		logger: logging.WithComponent(logger, "pipeline"),
	}
}

// Run executes every step in order. The first failing step aborts the run;
// partial CSV outputs from completed steps are left in place for
// inspection.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()
	result := &Result{
		RunID: uuid.NewString(),
		Stamp: export.Stamp(started),
	}
	runLogger := r.logger.With(logging.String(logging.FieldRunID, result.RunID))
	runLogger.Info("run started",
		logging.String("gorilla_csv", opts.GorillaCSV),
		logging.String("diva_csv", opts.DivaCSV))

	csvDir := r.cfg.Paths.CSVDir
	var records []asset.Record

	err := r.step(ctx, runLogger, "merge", func(ctx context.Context) error {
		gorilla, err := export.ReadTable(opts.GorillaCSV)
		if err != nil {
			return err
		}
		diva, err := export.ReadTable(opts.DivaCSV)
		if err != nil {
			return err
		}
		merged, summary, err := merge.Outer(gorilla, diva, export.ColGUID)
		if err != nil {
			return err
		}
		result.Merge = summary
		return export.WriteTable(export.MergedCSV(csvDir, result.Stamp), merged)
	})
	if err != nil {
		return result, err
	}

	err = r.step(ctx, runLogger, "parse", func(ctx context.Context) error {
		all, err := export.ReadRecords(export.MergedCSV(csvDir, result.Stamp))
		if err != nil {
			return err
		}
		parsed, removed := export.ParseFilter(all, runLogger)
		result.Removed = removed
		records = parsed
		return export.WriteRecords(export.ParsedCSV(csvDir, result.Stamp), parsed, true)
	})
	if err != nil {
		return result, err
	}

	err = r.step(ctx, runLogger, "clean", func(ctx context.Context) error {
		enricher := enrich.NewEnricher(runLogger)
		cleaned, summary := enricher.Process(records)
		result.Clean = summary
		records = cleaned
		return export.WriteRecords(export.CleanedCSV(csvDir, result.Stamp), cleaned, false)
	})
	if err != nil {
		return result, err
	}

	err = r.step(ctx, runLogger, "reconcile", func(ctx context.Context) error {
		reconciler := enrich.NewReconciler(runLogger)
		result.Reconcile = reconciler.Reconcile(records)
		result.FinalCSV = export.FinalCSV(csvDir, result.Stamp)
		return export.WriteRecords(result.FinalCSV, records, false)
	})
	if err != nil {
		return result, err
	}

	err = r.step(ctx, runLogger, "persist", func(ctx context.Context) error {
		if err := r.store.ReplaceBatch(ctx, records); err != nil {
			return err
		}
		result.Loaded = len(records)
		return nil
	})
	if err != nil {
		return result, err
	}

	if !opts.SkipHandoff {
		err = r.step(ctx, runLogger, "checkin", func(ctx context.Context) error {
			writer := checkin.NewWriter(r.store, r.cfg, runLogger)
			summary, err := writer.Run(ctx, opts.CheckinLimit)
			result.Checkin = summary
			return err
		})
		if err != nil {
			return result, err
		}

		err = r.step(ctx, runLogger, "proxy", func(ctx context.Context) error {
			stager := proxy.NewStager(r.store, r.cfg, runLogger)
			summary, err := stager.Run(ctx)
			result.Proxy = summary
			return err
		})
		if err != nil {
			return result, err
		}
	}

	result.Elapsed = time.Since(started)
	runLogger.Info("run completed",
		logging.Int("loaded", result.Loaded),
		logging.Int("descriptors", result.Checkin.Written),
		logging.Int("proxies", result.Proxy.Copied),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}

func (r *Runner) step(ctx context.Context, logger *slog.Logger, name string, fn func(context.Context) error) error {
	stepLogger := logger.With(logging.String(logging.FieldStep, name))
	start := time.Now()
	stepLogger.Info("step started")
	if err := fn(ctx); err != nil {
		stepLogger.Error("step failed", logging.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	stepLogger.Info("step completed", logging.Duration("elapsed", time.Since(start)))
	return nil
}
