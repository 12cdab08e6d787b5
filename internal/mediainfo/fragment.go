package mediainfo

import (
	"encoding/xml"
	"regexp"
	"strings"
)

// fragment mirrors the embedded metadata paths the source system writes.
// Absent sub-elements decode to empty strings, which map to the Null
// sentinel rather than an error.
type fragment struct {
	VideoTrack struct {
		Video struct {
			Format           string `xml:"Format"`
			AverageFrameRate string `xml:"AverageFrameRate"`
			Width            string `xml:"Width"`
			Height           string `xml:"Height"`
		} `xml:"Video"`
	} `xml:"VideoTrack"`
	DurationInMs string `xml:"DurationInMs"`
	FileName     string `xml:"FileName"`
}

func parseFragment(metaxml string) (fragment, error) {
	var frag fragment
	if err := xml.Unmarshal([]byte(CleanFragment(metaxml)), &frag); err != nil {
		return fragment{}, err
	}
	return frag, nil
}

var bareEntity = regexp.MustCompile(`&(amp;|lt;|gt;|apos;|quot;|#[0-9]+;)?`)

// CleanFragment repairs the two recurring defects in source fragments:
// Windows path separators inside FileName and bare '&' characters that the
// XML decoder would reject. Escaped entities are left alone.
func CleanFragment(metaxml string) string {
	cleaned := strings.ReplaceAll(metaxml, `\`, "/")
	return bareEntity.ReplaceAllStringFunc(cleaned, func(match string) string {
		if match == "&" {
			return "and"
		}
		return match
	})
}
