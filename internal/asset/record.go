package asset

import "strings"

// Null is the sentinel used for absent values across the CSV exports and the
// assets datastore. The upstream Oracle exports use the literal string, so it
// survives every intermediate format unchanged.
const Null = "NULL"

// TitleType is the coarse classification of an asset.
type TitleType string

const (
	TitleTypeVideo    TitleType = "video"
	TitleTypeArchive  TitleType = "archive"
	TitleTypeGraphic  TitleType = "graphic"
	TitleTypeDocument TitleType = "document"
	// TitleTypeNull marks a record no classification rule matched. A normal,
	// loggable outcome rather than an error.
	TitleTypeNull TitleType = Null
)

// Merge indicator values produced by the outer join of the two exports.
// Only MergeBoth rows reach the enrichment core.
const (
	MergeBoth      = "both"
	MergeLeftOnly  = "left_only"
	MergeRightOnly = "right_only"
)

// Proxy tri-state values tracked per record in the datastore.
const (
	ProxyNotCopied     = 0
	ProxyCopied        = 1
	ProxyNotApplicable = 3
)

// Record is one row of the merged Gorilla/Diva batch. Identity and
// descriptive fields come from the exports; classification and technical
// fields are filled in by the enrichment passes. String fields use the Null
// sentinel when absent.
type Record struct {
	GUID          string
	Name          string
	FileSize      int64
	DataTapeID    string
	ObjectName    string
	ContentLength int64
	SourceCreated string
	Created       string
	LastModified  string
	TimecodeIn    string
	TimecodeOut   string
	OnAirID       string
	RURI          string

	TitleType   TitleType
	FrameRate   string
	Codec       string
	Width       string
	Height      string
	TrafficCode string
	DurationMS  string
	ContentType string
	Filename    string

	XMLCreated  int
	ProxyCopied int

	// MetaXML is the embedded technical-metadata fragment, or Null when the
	// source system recorded none.
	MetaXML string

	OCComponentName string

	// Merge is the outer-join indicator for this row.
	Merge string
}

// NewRecord returns a record with every derived field set to the Null
// sentinel so unclassified rows round-trip cleanly through CSV and SQLite.
func NewRecord() Record {
	return Record{
		TitleType:   TitleTypeNull,
		FrameRate:   Null,
		Codec:       Null,
		Width:       Null,
		Height:      Null,
		TrafficCode: Null,
		DurationMS:  Null,
		ContentType: Null,
		Filename:    Null,
		MetaXML:     Null,
	}
}

// IsNull reports whether a field value is absent under the sentinel
// convention. Empty strings count as absent so values survive CSV
// round-trips that drop the literal.
func IsNull(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, Null)
}

// OrNull maps an empty value to the sentinel.
func OrNull(value string) string {
	if strings.TrimSpace(value) == "" {
		return Null
	}
	return value
}

// HasMetaXML reports whether the record carries an embedded metadata
// fragment. Absence selects the heuristic estimation branch.
func (r *Record) HasMetaXML() bool {
	return !IsNull(r.MetaXML)
}

// IsVideo reports whether the record classified as video.
func (r *Record) IsVideo() bool {
	return r.TitleType == TitleTypeVideo
}

// ContentTypeContains reports whether the comma-joined content type tag set
// mentions the given marker.
func (r *Record) ContentTypeContains(marker string) bool {
	if IsNull(r.ContentType) {
		return false
	}
	for _, tag := range strings.Split(r.ContentType, ",") {
		if strings.EqualFold(strings.TrimSpace(tag), marker) {
			return true
		}
	}
	return false
}
