package locale

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayName returns the locale's name in its own language ("日本語",
// "Deutsch"). Codes x/text cannot parse (e.g. "cn") are returned as-is.
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.Self.Name(tag)
	if strings.TrimSpace(name) == "" {
		return code
	}
	return name
}

// WellFormed reports whether code parses as a BCP 47 tag. The registry
// itself does not require it ("cn" is a legacy key).
func WellFormed(code string) bool {
	_, err := language.Parse(code)
	return err == nil
}

// Suggest returns the registry key closest to code, compared
// case-insensitively. ok is false when nothing is reasonably close.
func Suggest(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	want := strings.ToLower(strings.ReplaceAll(code, "_", "-"))
	best := ""
	bestDist, bestScore := -1, -1
	for _, c := range codes {
		lc := strings.ToLower(c)
		d := levenshtein.ComputeDistance(want, lc)
		// Equal distances prefer a candidate with the same language subtag.
		score := d * 2
		if languageOf(lc) != languageOf(want) {
			score++
		}
		if bestScore < 0 || score < bestScore {
			best, bestDist, bestScore = c, d, score
		}
	}
	if bestDist < 0 || bestDist > 2 {
		return "", false
	}
	return best, true
}

func languageOf(code string) string {
	if i := strings.IndexByte(code, '-'); i >= 0 {
		return code[:i]
	}
	return code
}
