package enrich

import (
	"log/slog"
	"strings"

	"gordiva/internal/asset"
	"gordiva/internal/logging"
	"gordiva/internal/mediainfo"
)

// Reconciler is the final sweep over an enriched batch. It visits only video
// records and back-fills codec, frame rate, and resolution that the first
// pass could not resolve, using name heuristics, sibling records sharing the
// same traffic code, and last-resort defaults.
type Reconciler struct {
	logger *slog.Logger
}

// NewReconciler builds a reconciler. A nil logger disables logging.
func NewReconciler(logger *slog.Logger) *Reconciler {
	return &Reconciler{logger: logging.WithComponent(logger, "reconcile")}
}

// ReconcileSummary reports counts for the final pass.
type ReconcileSummary struct {
	Visited         int
	Changed         int
	UnresolvedCodec int
}

// Reconcile runs the three independent checks over every video record. The
// batch must be fully enriched before this runs; sibling lookups read the
// whole slice. Each field change is logged as a before/after diff keyed by
// record index.
func (r *Reconciler) Reconcile(records []asset.Record) ReconcileSummary {
	var summary ReconcileSummary

	for index := range records {
		rec := &records[index]
		if !rec.IsVideo() {
			continue
		}
		summary.Visited++

		before := *rec
		r.checkCodec(rec, &summary)
		r.checkFrameRate(rec, records)
		r.checkResolution(rec)

		if r.logDiff(index, before, *rec) {
			summary.Changed++
		}
	}

	r.logger.Info("final pass complete",
		logging.Int("visited", summary.Visited),
		logging.Int("changed", summary.Changed),
		logging.Int("unresolved_codec", summary.UnresolvedCodec),
	)
	return summary
}

// checkCodec re-runs the name estimator for records still missing a codec,
// defaulting edit and version masters to ProRes.
func (r *Reconciler) checkCodec(rec *asset.Record, summary *ReconcileSummary) {
	if !asset.IsNull(rec.Codec) {
		return
	}
	if codec, ok := mediainfo.EstimateCodec(rec.Name); ok {
		rec.Codec = codec
		return
	}
	if rec.ContentTypeContains("VM") || rec.ContentTypeContains("EM") {
		rec.Codec = "PRORES"
		return
	}
	summary.UnresolvedCodec++
	r.logger.Warn("codec unresolved after final pass",
		logging.String("guid", rec.GUID),
		logging.String("name", rec.Name),
	)
}

// checkFrameRate copies the frame rate from the first sibling edit master
// sharing the record's traffic code. No sibling is a normal outcome.
func (r *Reconciler) checkFrameRate(rec *asset.Record, records []asset.Record) {
	if mediainfo.IsCanonicalFrameRate(rec.FrameRate) {
		return
	}
	if !asset.IsNull(rec.FrameRate) {
		return
	}

	for i := range records {
		sibling := &records[i]
		if sibling == rec {
			continue
		}
		if sibling.TrafficCode != rec.TrafficCode {
			continue
		}
		if !sibling.IsVideo() || !sibling.ContentTypeContains("EM") {
			continue
		}
		if asset.IsNull(sibling.FrameRate) {
			continue
		}
		rec.FrameRate = sibling.FrameRate
		r.logger.Info("frame rate copied from sibling record",
			logging.String("guid", rec.GUID),
			logging.String("sibling_guid", sibling.GUID),
			logging.String("traffic_code", rec.TrafficCode),
			logging.String("frame_rate", rec.FrameRate),
		)
		return
	}

	r.logger.Debug("no sibling with a usable frame rate",
		logging.String("guid", rec.GUID),
		logging.String("traffic_code", rec.TrafficCode),
	)
}

// checkResolution applies the last-resort resolution defaults.
func (r *Reconciler) checkResolution(rec *asset.Record) {
	if !asset.IsNull(rec.Width) && !asset.IsNull(rec.Height) {
		return
	}

	switch {
	case rec.ContentTypeContains("UHD") ||
		strings.Contains(rec.Name, "HDR") ||
		strings.Contains(strings.ToUpper(rec.Codec), "XAVC"):
		rec.Width, rec.Height = "3840", "2160"
	case rec.ContentTypeContains("VM") || rec.ContentTypeContains("EM"):
		rec.Width, rec.Height = "1920", "1080"
	case strings.Contains(strings.ToUpper(rec.Filename), "XDCAM"):
		rec.Width, rec.Height = "1920", "1080"
	default:
		r.logger.Info("resolution unresolved after final pass",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
		)
	}
}

// logDiff emits one before/after entry per changed field, keyed by record
// index, and reports whether anything changed.
func (r *Reconciler) logDiff(index int, before, after asset.Record) bool {
	type fieldDiff struct {
		name     string
		from, to string
	}
	var diffs []fieldDiff
	if before.Codec != after.Codec {
		diffs = append(diffs, fieldDiff{"codec", before.Codec, after.Codec})
	}
	if before.FrameRate != after.FrameRate {
		diffs = append(diffs, fieldDiff{"frame_rate", before.FrameRate, after.FrameRate})
	}
	if before.Width != after.Width {
		diffs = append(diffs, fieldDiff{"width", before.Width, after.Width})
	}
	if before.Height != after.Height {
		diffs = append(diffs, fieldDiff{"height", before.Height, after.Height})
	}

	for _, diff := range diffs {
		r.logger.Info("field reconciled",
			logging.Int("index", index),
			logging.String("guid", after.GUID),
			logging.String("field", diff.name),
			logging.String("from", diff.from),
			logging.String("to", diff.to),
		)
	}
	return len(diffs) > 0
}
