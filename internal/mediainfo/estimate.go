package mediainfo

import (
	"regexp"
	"strings"
)

// Canonical broadcast frame rates. Anything else is treated as unresolved.
var CanonicalFrameRates = []string{"23.98", "25", "29.97", "59.94"}

// IsCanonicalFrameRate reports whether a value is one of the four canonical
// broadcast frame rates.
func IsCanonicalFrameRate(value string) bool {
	for _, canonical := range CanonicalFrameRates {
		if value == canonical {
			return true
		}
	}
	return false
}

// codecTokens are the delimiter-bounded codec markers recognized in cleaned
// names, in precedence order.
var codecTokens = []string{
	"XDCAMHD", "XDCAM", "DNXHD", "DNX", "XAVC", "UHD",
	"PRORES", "H264", "MPEG2", "MPEG4", "AVC", "DV",
}

// codecLabels maps a matched token to the canonical codec label.
var codecLabels = map[string]string{
	"XDCAM":   "MPEG Video",
	"XDCAMHD": "MPEG Video",
	"DNX":     "VC-3",
	"DNXHD":   "VC-3",
	"UHD":     "XAVC",
}

var codecPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(codecTokens))
	for _, token := range codecTokens {
		patterns[token] = regexp.MustCompile(`(?i)(?:^|[-_])` + token + `(?:[-_1-5]|$)`)
	}
	return patterns
}()

// EstimateCodec searches a cleaned name for a known codec token and maps it
// to its canonical label. The second return is false when nothing matched.
func EstimateCodec(name string) (string, bool) {
	for _, token := range codecTokens {
		if !codecPatterns[token].MatchString(name) {
			continue
		}
		if label, ok := codecLabels[token]; ok {
			return label, true
		}
		return token, true
	}
	return "", false
}

// identifierPrefixLen is the length of the traffic-code prefix skipped
// before frame-rate digits are searched, so a leading "059..." code is
// never mistaken for 59.94.
const identifierPrefixLen = 7

var frameRateDigits = regexp.MustCompile(`(?:^|[-_])(23976|2398|2997|5994|23\.976|23\.98|29\.97|59\.94|24P|720P|NTSC|PAL|25|23|29|59)(?:[-_IP]|$)`)

// frameRateValues maps a matched frame-rate token to its reported value.
var frameRateValues = map[string]string{
	"23976":  "23.976",
	"2398":   "23.98",
	"2997":   "29.97",
	"5994":   "59.94",
	"23.976": "23.976",
	"23.98":  "23.98",
	"29.97":  "29.97",
	"59.94":  "59.94",
	"25":     "25",
	"23":     "23",
	"29":     "29",
	"59":     "59",
	"24P":    "24",
	"720P":   "59.94",
	"NTSC":   "29.97",
	"PAL":    "25",
}

// EstimateFrameRate searches a cleaned name for frame-rate digits or
// broadcast-standard tokens, skipping the identifier prefix. The second
// return is false when nothing matched.
func EstimateFrameRate(name string) (string, bool) {
	searched := name
	if len(searched) > identifierPrefixLen {
		searched = searched[identifierPrefixLen:]
	}
	match := frameRateDigits.FindStringSubmatch(strings.ToUpper(searched))
	if match == nil {
		return "", false
	}
	value, ok := frameRateValues[match[1]]
	if !ok {
		return "", false
	}
	return value, true
}

// Resolution estimation thresholds in bytes.
const (
	hdSizeFloor   = 18_000_000_000
	hdSizeCeiling = 200_000_000_000
)

func isUHDCodec(codec string) bool {
	upper := strings.ToUpper(strings.TrimSpace(codec))
	return upper == "XAVC" || upper == "UHD"
}

// EstimateResolution guesses frame dimensions from file size and codec.
// The second return is false when no estimate applies; callers keep the
// Null sentinel and log the rationale.
func EstimateResolution(fileSize, contentLength int64, codec string) (width, height string, ok bool) {
	switch {
	case fileSize > hdSizeFloor && fileSize < hdSizeCeiling && !isUHDCodec(codec) && contentLength != 0:
		return "1920", "1080", true
	case isUHDCodec(codec) && fileSize > hdSizeFloor:
		return "3840", "2160", true
	default:
		return "", "", false
	}
}
