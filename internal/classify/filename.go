package classify

import (
	"strings"

	"gordiva/internal/asset"
)

var compactDateReplacer = strings.NewReplacer("-", "", ":", "", " ", "")

// CompactDate strips the '-', ':' and space characters from a source
// creation timestamp, e.g. "2024-01-15 10:30:00" -> "20240115103000".
func CompactDate(timestamp string) string {
	return compactDateReplacer.Replace(strings.TrimSpace(timestamp))
}

// ComposeFilename builds the target filename for non-video classifications.
// Video filenames depend on embedded metadata and are produced by the media
// attribute resolver instead.
func ComposeFilename(cleanedName string, titleType asset.TitleType, sourceCreated string) string {
	switch titleType {
	case asset.TitleTypeDocument:
		return cleanedName + ".docx"
	case asset.TitleTypeArchive, asset.TitleTypeGraphic:
		return cleanedName + "_" + CompactDate(sourceCreated) + ".zip"
	default:
		return cleanedName
	}
}
