package nameclean

import (
	"regexp"
	"sort"
	"strings"
)

// abbreviation folds one long production token to the short code the
// downstream classifier recognizes. Substitution is boundary-respecting:
// the token must be preceded by start-of-string, '-', '_' or a space, and
// followed by end-of-string, '-', '_', a space, or a digit.
type abbreviation struct {
	pattern *regexp.Regexp
	code    string
}

var abbreviations = buildAbbreviations(map[string][]string{
	"PSEL": {"PROMOTIONAL SELECTS", "PROMO SELECTS", "PROMOSELECTS"},
	"DELS": {"DELETED SCENES", "DELETEDSCENES"},
	"GRFX": {"GRAPHICS PACKAGE", "GFXPACKAGE"},
})

func buildAbbreviations(table map[string][]string) []abbreviation {
	// Longer tokens first so "PROMOTIONAL SELECTS" folds before the
	// shorter "PROMO SELECTS" variant can partially match.
	var out []abbreviation
	for code, tokens := range table {
		for _, token := range tokens {
			expr := `(^|[-_ ])` + regexp.QuoteMeta(token) + `($|[-_ 0-9])`
			out = append(out, abbreviation{
				pattern: regexp.MustCompile(expr),
				code:    code,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return len(out[i].pattern.String()) > len(out[j].pattern.String())
	})
	return out
}

var ampersandRun = regexp.MustCompile(`&+`)

// Normalize cleans a raw display name: upper-cases it, replaces any run of
// '&' characters with "AND", and folds known long tokens to their short
// codes. Pure and idempotent.
func Normalize(raw string) string {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return name
	}

	name = ampersandRun.ReplaceAllString(name, "AND")

	for _, abbr := range abbreviations {
		name = abbr.pattern.ReplaceAllString(name, "${1}"+abbr.code+"${2}")
	}
	return name
}
