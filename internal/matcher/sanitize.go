// Package matcher implements title normalization, two-source search
// (primary names + alternative names), multi-pass disambiguation, and
// hint-based tie-break. The sanitizer and roman-numeral
// conversion are hand-rolled regexp/strings pure functions — the one place
// this repository intentionally stays on the standard library, since no
// example repo in the corpus ships a title-fuzzing library; see DESIGN.md.
package matcher

import (
	"regexp"
	"strings"
)

var (
	trailingArticleRe = regexp.MustCompile(`(?i)^(.+),\s*(the|a|an|der|das|die)$`)
	bracketRe         = regexp.MustCompile(`\[.+?\]|\(.+?\)|\{.+?\}`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
	trademarkGlyphs   = strings.NewReplacer(
		"™", "", "®", "", "©", "",
		"(TM)", "", "(R)", "", "(C)", "",
	)
)

// Sanitize is the pure normalization function applied to both the request
// name and every candidate name before comparison. It is
// idempotent: Sanitize(Sanitize(s)) == Sanitize(s) for all s (law 1). The
// rules are reapplied until a pass changes nothing, since one pass can expose
// new work for an earlier rule ("Witcher 3, The (2015)" only ends in an
// article once the bracket is gone).
func Sanitize(s string) string {
	for {
		prev := s
		if m := trailingArticleRe.FindStringSubmatch(s); m != nil {
			s = m[2] + " " + m[1]
		}

		s = bracketRe.ReplaceAllString(s, "")
		s = trademarkGlyphs.Replace(s)

		s = strings.ReplaceAll(s, "_", " ")
		s = strings.ReplaceAll(s, ".", " ")
		s = strings.ReplaceAll(s, "’", "'")
		s = strings.ReplaceAll(s, "\\", "")

		s = whitespaceRe.ReplaceAllString(s, " ")
		s = strings.TrimSpace(s)
		if s == prev {
			return s
		}
	}
}
