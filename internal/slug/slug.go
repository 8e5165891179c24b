// Package slug turns titles and tag names into URL-safe identifiers and keeps
// a per-build registry of every identifier handed out.
//
// The registry never renames a candidate to make it unique. A collision is
// reported as a *DuplicateSlugError so a content problem fails the build
// instead of silently overwriting another page.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a slug.
const Separator = '-'

// Normalize derives a slug from text: accents are folded, the result is
// lowercased, everything except ASCII letters and digits is dropped, and runs
// of whitespace, '-' or '_' become a single Separator. A positive maxLen caps
// the result, after which trailing separators are trimmed again.
func Normalize(text string, maxLen int) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteRune(Separator)
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingSep = true
		}
	}

	out := b.String()
	if maxLen > 0 && len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], string(Separator))
	}
	return out
}
