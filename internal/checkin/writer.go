package checkin

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"gordiva/internal/asset"
	"gordiva/internal/config"
	"gordiva/internal/datastore"
	"gordiva/internal/logging"
)

// utf8Sig prefixes each descriptor so Dalet's importer detects the encoding.
var utf8Sig = []byte{0xEF, 0xBB, 0xBF}

// unallocatedTapeID marks assets Diva has not yet written to tape.
const unallocatedTapeID = "unallocated"

// Summary reports one check-in pass.
type Summary struct {
	Written int
	Skipped int
}

// Writer emits check-in descriptors for pending assets.
type Writer struct {
	store  *datastore.Store
	cfg    *config.Config
	logger *slog.Logger
}

func NewWriter(store *datastore.Store, cfg *config.Config, logger *slog.Logger) *Writer {
	return &Writer{
		store:  store,
		cfg:    cfg,
		logger: logging.WithComponent(logger, "checkin"),
	}
}

// Run writes descriptors for up to limit pending assets and flags them in
// the datastore. A non-positive limit falls back to the configured default,
// and the configured maximum caps any request.
func (w *Writer) Run(ctx context.Context, limit int) (Summary, error) {
	var summary Summary

	if limit <= 0 {
		limit = w.cfg.Checkin.DefaultLimit
	}
	if limit > w.cfg.Checkin.MaxLimit {
		w.logger.Warn("check-in limit capped",
			logging.Int("requested", limit),
			logging.Int("max", w.cfg.Checkin.MaxLimit))
		limit = w.cfg.Checkin.MaxLimit
	}

	pending, err := w.store.PendingCheckin(ctx, limit)
	if err != nil {
		return summary, err
	}

	written := make([]string, 0, len(pending))
	for i := range pending {
		rec := &pending[i]
		if rec.DataTapeID == unallocatedTapeID {
			w.logger.Info("check-in skipped, tape unallocated",
				logging.String("guid", rec.GUID),
				logging.String("name", rec.Name))
			summary.Skipped++
			continue
		}

		if err := w.writeDescriptor(rec); err != nil {
			return summary, err
		}
		written = append(written, rec.GUID)
		summary.Written++
		w.logger.Info("descriptor written",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name))
	}

	if _, err := w.store.MarkXMLCreated(ctx, written); err != nil {
		return summary, err
	}

	w.logger.Info("check-in pass complete",
		logging.Int("written", summary.Written),
		logging.Int("skipped", summary.Skipped))
	return summary, nil
}

// DescriptorPath returns where an asset's descriptor is written.
func (w *Writer) DescriptorPath(rec *asset.Record) string {
	return filepath.Join(w.cfg.Paths.XMLCheckinDir, rec.GUID+".xml")
}

func (w *Writer) writeDescriptor(rec *asset.Record) error {
	descriptor := NewDescriptor(rec, w.cfg.Checkin.WatchFolderRoot)
	data, err := descriptor.Marshal()
	if err != nil {
		return err
	}
	payload := append(append([]byte{}, utf8Sig...), data...)
	return os.WriteFile(w.DescriptorPath(rec), payload, 0o644)
}
