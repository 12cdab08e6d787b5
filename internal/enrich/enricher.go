package enrich

import (
	"log/slog"

	"gordiva/internal/asset"
	"gordiva/internal/classify"
	"gordiva/internal/logging"
	"gordiva/internal/mediainfo"
	"gordiva/internal/nameclean"
)

// Summary reports batch-level counts for one enrichment pass.
type Summary struct {
	Processed    int
	Dropped      int
	Videos       int
	Archives     int
	Graphics     int
	Documents    int
	Unclassified int
}

// Enricher performs the first classification pass over a batch.
type Enricher struct {
	logger   *slog.Logger
	resolver *mediainfo.Resolver
}

// NewEnricher builds an enricher. A nil logger disables logging.
func NewEnricher(logger *slog.Logger) *Enricher {
	return &Enricher{
		logger:   logging.WithComponent(logger, "enrich"),
		resolver: mediainfo.NewResolver(logger),
	}
}

// Process classifies and enriches every row of the batch. The input slice is
// treated as an immutable snapshot: enriched copies are emitted to a new
// slice, and rows whose merge indicator is not "both" are dropped. A record
// never aborts the batch; the worst per-record outcome is Null fields plus a
// log entry.
func (e *Enricher) Process(records []asset.Record) ([]asset.Record, Summary) {
	out := make([]asset.Record, 0, len(records))
	var summary Summary

	for index, snapshot := range records {
		if snapshot.Merge != asset.MergeBoth {
			summary.Dropped++
			e.logger.Debug("record dropped by merge indicator",
				logging.Int("index", index),
				logging.String("guid", snapshot.GUID),
				logging.String("merge", snapshot.Merge),
			)
			continue
		}

		rec := snapshot
		e.enrichRecord(index, &rec, &summary)
		out = append(out, rec)
		summary.Processed++
	}

	e.logger.Info("enrichment pass complete",
		logging.Int("processed", summary.Processed),
		logging.Int("dropped", summary.Dropped),
		logging.Int("videos", summary.Videos),
		logging.Int("archives", summary.Archives),
		logging.Int("graphics", summary.Graphics),
		logging.Int("documents", summary.Documents),
		logging.Int("unclassified", summary.Unclassified),
	)
	return out, summary
}

func (e *Enricher) enrichRecord(index int, rec *asset.Record, summary *Summary) {
	rec.Name = nameclean.Normalize(rec.Name)
	rec.TrafficCode = nameclean.TrafficCode(rec.Name)
	rec.MetaXML = asset.OrNull(rec.MetaXML)

	result := classify.Classify(rec.Name)
	rec.TitleType = result.TitleType
	rec.ContentType = result.ContentType
	if result.ProxyNotApplicable {
		rec.ProxyCopied = asset.ProxyNotApplicable
	}

	switch result.TitleType {
	case asset.TitleTypeVideo:
		attrs := e.resolver.Resolve(rec)
		rec.FrameRate = attrs.FrameRate
		rec.Codec = attrs.Codec
		rec.Width = attrs.Width
		rec.Height = attrs.Height
		rec.DurationMS = attrs.DurationMS
		rec.Filename = attrs.Filename
		summary.Videos++
	case asset.TitleTypeArchive:
		rec.Filename = classify.ComposeFilename(rec.Name, rec.TitleType, rec.SourceCreated)
		summary.Archives++
	case asset.TitleTypeGraphic:
		rec.Filename = classify.ComposeFilename(rec.Name, rec.TitleType, rec.SourceCreated)
		summary.Graphics++
	case asset.TitleTypeDocument:
		rec.Filename = classify.ComposeFilename(rec.Name, rec.TitleType, rec.SourceCreated)
		summary.Documents++
	default:
		rec.Filename = rec.Name
		summary.Unclassified++
		e.logger.Info("no classification rule matched",
			logging.Int("index", index),
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
		)
	}
}
