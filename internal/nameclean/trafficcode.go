package nameclean

import "strings"

// UnknownCode is returned for names with no delimiter to split on. It is a
// valid grouping key; downstream lookups simply find no siblings for it.
const UnknownCode = "UNKNOWN"

// TrafficCode derives the business identifier from a cleaned name: the
// segment before the first '_' or '-'. Names with no delimiter yield
// UnknownCode. Earlier revisions validated a strict six-digit leading-zero
// form; the current rule intentionally accepts any first segment.
func TrafficCode(cleanedName string) string {
	name := strings.TrimSpace(cleanedName)
	if name == "" {
		return UnknownCode
	}
	idx := strings.IndexAny(name, "_-")
	if idx < 0 {
		return UnknownCode
	}
	if idx == 0 {
		// Leading delimiter means an empty first segment.
		return UnknownCode
	}
	return name[:idx]
}
