package export

import (
	"log/slog"
	"regexp"
	"strings"

	"gordiva/internal/asset"
	"gordiva/internal/logging"
)

// Markers pulled from asset names during the parse step. An asset with none
// of these is outside the migration set and never reaches cleaning.
var migratableMarkers = []*regexp.Regexp{
	markerPattern("VM"),
	markerPattern("EM"),
	markerPattern("UHD"),
	markerPattern("XDCAMHD"),
	markerPattern("XDCAM"),
	markerPattern("AVP"),
	markerPattern("PPRO"),
	markerPattern("FCP"),
	markerPattern("PTS"),
	markerPattern("GRFX"),
	markerPattern("GFX"),
	markerPattern("WAVS"),
	markerPattern("WAV"),
}

var outgoingMarker = markerPattern("OUTGOING")

// Name fragments that exclude an asset even when a migratable marker is
// present. These identify program masters and promos that stay in Gorilla.
var excludedFragments = []string{"PGS", "SVM", "SDM", "CEM", "PROMO"}

func markerPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[-_])` + tag + `(?:[-_1-5]|$)`)
}

// ParseFilter reduces a merged batch to the records worth cleaning. It
// keeps records whose name carries a migratable or outgoing marker, drops
// anything with an excluded fragment, and reports how many records were
// removed.
func ParseFilter(records []asset.Record, logger *slog.Logger) ([]asset.Record, int) {
	log := logging.WithComponent(logger, "parse")

	kept := make([]asset.Record, 0, len(records))
	removed := 0
	for i := range records {
		rec := records[i]
		if !parseEligible(rec.Name) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}

	log.Info("parse filter applied",
		logging.Int("kept", len(kept)),
		logging.Int("removed", removed))
	return kept, removed
}

func parseEligible(name string) bool {
	upper := strings.ToUpper(name)
	for _, fragment := range excludedFragments {
		if strings.Contains(upper, fragment) {
			return false
		}
	}
	// Outgoing QC records pass the filter even without a migratable
	// marker: classification routes them to the document path, which is
	// unreachable if they are dropped here.
	if outgoingMarker.MatchString(name) {
		return true
	}
	for _, marker := range migratableMarkers {
		if marker.MatchString(name) {
			return true
		}
	}
	return false
}
