package mediainfo

import (
	"log/slog"
	"path"
	"regexp"
	"strconv"
	"strings"

	"gordiva/internal/asset"
	"gordiva/internal/classify"
	"gordiva/internal/logging"
)

// Known filename prefix conventions in fragment FileName fields: a literal
// storage prefix, or a fixed-length identifier prefix stripped by default.
const (
	literalFilePrefix = "GOR_"
	defaultPrefixLen  = 7
)

// Codec label applied when a known-bad low-resolution AVC fragment is
// corrected up to HD.
const intermediateCodecLabel = "ProRes HQ"

// Attributes holds the technical fields the resolver produces for a video
// record. Unresolvable fields carry the Null sentinel.
type Attributes struct {
	FrameRate  string
	Codec      string
	Width      string
	Height     string
	DurationMS string
	Filename   string
}

func nullAttributes() Attributes {
	return Attributes{
		FrameRate:  asset.Null,
		Codec:      asset.Null,
		Width:      asset.Null,
		Height:     asset.Null,
		DurationMS: asset.Null,
		Filename:   asset.Null,
	}
}

// Resolver derives technical attributes for video records.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver builds a resolver. A nil logger is replaced with a no-op one.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logging.WithComponent(logger, "mediainfo")}
}

// Resolve returns the technical attributes for one record. Exactly one
// branch runs: the fragment parse when embedded metadata is present, the
// heuristic estimators otherwise. A malformed fragment is logged with the
// record identity and the record recovers through the heuristic branch.
func (r *Resolver) Resolve(rec *asset.Record) Attributes {
	if rec.HasMetaXML() {
		attrs, err := r.resolveFromFragment(rec)
		if err == nil {
			return attrs
		}
		r.logger.Warn("metadata fragment unparseable, falling back to estimation",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
			logging.Error(err),
		)
	}
	return r.estimate(rec)
}

func (r *Resolver) resolveFromFragment(rec *asset.Record) (Attributes, error) {
	frag, err := parseFragment(rec.MetaXML)
	if err != nil {
		return Attributes{}, err
	}

	attrs := nullAttributes()
	video := frag.VideoTrack.Video
	attrs.Codec = asset.OrNull(strings.TrimSpace(video.Format))
	attrs.Width = asset.OrNull(strings.TrimSpace(video.Width))
	attrs.Height = asset.OrNull(strings.TrimSpace(video.Height))
	attrs.DurationMS = asset.OrNull(strings.TrimSpace(frag.DurationInMs))
	attrs.Filename = fragmentFilename(frag.FileName)

	r.applyKnownCorrections(rec, &attrs)

	rate := strings.TrimSpace(video.AverageFrameRate)
	attrs.FrameRate = r.canonicalFrameRate(rec, rate)

	r.logger.Debug("resolved attributes from metadata fragment",
		logging.String("guid", rec.GUID),
		logging.String("codec", attrs.Codec),
		logging.String("frame_rate", attrs.FrameRate),
	)
	return attrs, nil
}

// canonicalFrameRate truncates a fragment frame rate to its leading integer
// pair and maps it onto a canonical broadcast rate. Unmappable values fall
// back to the filename heuristic.
func (r *Resolver) canonicalFrameRate(rec *asset.Record, raw string) string {
	if leading := leadingRatePair(raw); leading != "" {
		switch leading {
		case "23":
			return "23.98"
		case "25":
			return "25"
		case "29":
			return "29.97"
		case "59":
			return "59.94"
		}
	}
	if estimated, ok := EstimateFrameRate(rec.Name); ok {
		r.logger.Info("frame rate estimated from name",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
			logging.String("frame_rate", estimated),
		)
		return estimated
	}
	r.logger.Debug("frame rate unresolved",
		logging.String("guid", rec.GUID),
		logging.String("raw_rate", raw),
	)
	return asset.Null
}

func leadingRatePair(raw string) string {
	digits := ""
	for _, r := range raw {
		if r < '0' || r > '9' {
			break
		}
		digits += string(r)
	}
	if len(digits) < 2 {
		return ""
	}
	return digits[:2]
}

// applyKnownCorrections fixes the two recurring bad-value patterns the
// source system writes, in both resolver branches.
func (r *Resolver) applyKnownCorrections(rec *asset.Record, attrs *Attributes) {
	switch {
	case attrs.Width == "1888" && attrs.Height == "1062":
		attrs.Width, attrs.Height = "1920", "1080"
		r.logger.Info("corrected known-bad resolution 1888x1062",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
		)
	case attrs.Width == "640" && attrs.Height == "360" && strings.EqualFold(attrs.Codec, "AVC"):
		attrs.Width, attrs.Height = "1920", "1080"
		attrs.Codec = intermediateCodecLabel
		r.logger.Info("corrected low-resolution AVC fragment to HD",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
		)
	case attrs.Width == "640" && attrs.Height == "360" && strings.Contains(strings.ToUpper(attrs.Codec), "PRORES"):
		attrs.Width, attrs.Height = "1920", "1080"
		r.logger.Info("corrected low-resolution ProRes values to HD",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
		)
	}
}

func fragmentFilename(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return asset.Null
	}
	name = path.Base(name)
	if strings.HasPrefix(name, literalFilePrefix) {
		return name[len(literalFilePrefix):]
	}
	if len(name) > defaultPrefixLen {
		return name[defaultPrefixLen:]
	}
	return name
}

var mxfSuffix = regexp.MustCompile(`(?i)[-_]MXF$`)

func (r *Resolver) estimate(rec *asset.Record) Attributes {
	attrs := nullAttributes()

	codec, codecFound := EstimateCodec(rec.Name)
	if codecFound {
		attrs.Codec = codec
	} else {
		r.logger.Debug("no codec marker in name",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
		)
	}

	if rate, ok := EstimateFrameRate(rec.Name); ok {
		attrs.FrameRate = rate
		r.logger.Info("frame rate estimated from name",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
			logging.String("frame_rate", rate),
		)
	}

	if width, height, ok := EstimateResolution(rec.FileSize, rec.ContentLength, codec); ok {
		attrs.Width, attrs.Height = width, height
		r.logger.Info("resolution estimated from file size",
			logging.String("guid", rec.GUID),
			logging.Int64("file_size", rec.FileSize),
			logging.String("resolution", width+"x"+height),
		)
	} else {
		r.logger.Info("cannot determine resolution, leaving unset",
			logging.String("guid", rec.GUID),
			logging.String("name", rec.Name),
		)
	}

	if rec.ContentLength != 0 {
		attrs.DurationMS = strconv.FormatInt(rec.ContentLength*1000, 10)
	} else {
		attrs.DurationMS = "0"
	}

	attrs.Filename = estimatedFilename(rec.Name, rec.SourceCreated, codec)

	r.applyKnownCorrections(rec, &attrs)
	return attrs
}

// estimatedFilename composes the target filename for a video record with no
// fragment: name plus compact creation date, with the container extension
// implied by the name. ProRes material is always wrapped in QuickTime.
func estimatedFilename(name, sourceCreated, codec string) string {
	ext := ".mov"
	if mxfSuffix.MatchString(name) && !strings.EqualFold(codec, "PRORES") {
		ext = ".mxf"
	}
	return name + "_" + classify.CompactDate(sourceCreated) + ext
}
