package classify

import (
	"regexp"
	"strings"

	"gordiva/internal/asset"
)

// Content type assigned to every document classification.
const DocumentContentType = "DOCX"

// marker is one recognizable token. Matching is delimiter-bounded: the token
// must be preceded by start-of-string, '-' or '_', and followed by
// end-of-string, '-', '_' or a version digit 1-5. A token abutting another
// letter never matches.
type marker struct {
	tag     string
	pattern *regexp.Regexp
}

func newMarker(tag string) marker {
	return marker{
		tag:     tag,
		pattern: regexp.MustCompile(`(?i)(?:^|[-_])` + tag + `(?:[-_1-5]|$)`),
	}
}

func newMarkers(tags ...string) []marker {
	markers := make([]marker, 0, len(tags))
	for _, tag := range tags {
		markers = append(markers, newMarker(tag))
	}
	return markers
}

// Video indicator families, evaluated independently and in order. Every
// matching marker contributes its tag to the comma-joined content type.
var videoFamilies = [][]marker{
	newMarkers("VM", "EM", "UHD"),                      // version / edit masters
	newMarkers("TEXTLESS", "TEXTED", "SUBS", "SUBBED"), // subtitle / text variants
	newMarkers("MXF", "MOV", "PATCH"),                  // file wrappers
	newMarkers("XDCAMHD", "XDCAM", "DNXHD", "DNX", "XAVC"), // camera / codec origin
	newMarkers("PSEL", "DELS"),                         // tagged but special-cased selects
}

// Archive markers: the first match wins, after alias folding.
var archiveMarkers = newMarkers(
	"AVP", "PPRO", "FCP", "PTS",
	"GRFX", "GFXPACKAGE", "GFX", "GRAPHICS",
	"WAVS", "WAV", "SPLITS",
)

var documentPattern = regexp.MustCompile(`(?i)(?:^|[-_])OUTGOING(?:[-_]?(?:QC|UHD))?(?:[-_]|$)`)

// archiveAliases folds marker spelling variants to the canonical tag.
var archiveAliases = map[string]string{
	"GFX":        "GRFX",
	"GFXPACKAGE": "GRFX",
	"GRAPHICS":   "GRFX",
	"WAVS":       "WAV",
	"SPLITS":     "WAV",
}

// Result is the outcome of classifying one cleaned name. ProxyNotApplicable
// is set for the archive and graphic branches so the enricher can force the
// proxy tri-state.
type Result struct {
	TitleType          asset.TitleType
	ContentType        string
	ProxyNotApplicable bool
}

// Classify applies the ordered pattern families to a cleaned name. No-match
// is a normal outcome: the result carries the Null sentinel in both fields.
func Classify(cleanedName string) Result {
	if documentPattern.MatchString(cleanedName) {
		return Result{TitleType: asset.TitleTypeDocument, ContentType: DocumentContentType}
	}

	videoTags := matchVideoFamilies(cleanedName)
	archiveTag, archiveMatched := matchArchive(cleanedName)

	switch {
	case len(videoTags) > 0 && !archiveMatched:
		return Result{
			TitleType:   asset.TitleTypeVideo,
			ContentType: strings.Join(videoTags, ","),
		}
	case len(videoTags) == 0 && archiveMatched:
		return Result{
			TitleType:          archiveTitleType(archiveTag),
			ContentType:        archiveTag,
			ProxyNotApplicable: true,
		}
	case len(videoTags) > 0 && archiveMatched:
		return Result{
			TitleType:          archiveTitleType(archiveTag),
			ContentType:        archiveTag + "," + strings.Join(videoTags, ","),
			ProxyNotApplicable: true,
		}
	default:
		return Result{TitleType: asset.TitleTypeNull, ContentType: asset.Null}
	}
}

func matchVideoFamilies(name string) []string {
	var tags []string
	for _, family := range videoFamilies {
		for _, m := range family {
			if m.pattern.MatchString(name) {
				tags = append(tags, m.tag)
			}
		}
	}
	return tags
}

func matchArchive(name string) (string, bool) {
	for _, m := range archiveMarkers {
		if !m.pattern.MatchString(name) {
			continue
		}
		tag := m.tag
		if canonical, ok := archiveAliases[tag]; ok {
			tag = canonical
		}
		return tag, true
	}
	return "", false
}

func archiveTitleType(tag string) asset.TitleType {
	if tag == "GRFX" {
		return asset.TitleTypeGraphic
	}
	return asset.TitleTypeArchive
}
