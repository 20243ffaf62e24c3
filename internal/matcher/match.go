package matcher

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Request is a metadata request's name/hint payload as consumed by Match.
type Request struct {
	Name        string
	ReleaseYear int
}

var (
	andRe       = regexp.MustCompile(`\s+and\s+`)
	quoteRe     = regexp.MustCompile(`'`)
	colonDashRe = regexp.MustCompile(`\s*(:|-)\s*`)
)

// candidate pairs a search Hit with its sanitized name, mutated in place by
// each pass's transform.
type candidate struct {
	name string
	game Hit
}

type pass func(n string, cands []candidate) (string, []candidate)

var passes = []pass{
	passIdentity,
	passRoman,
	passThePrefix,
	passAmpersand,
	passStripQuotes,
	passColonDash,
}

func passIdentity(n string, cands []candidate) (string, []candidate) { return n, cands }

func passRoman(n string, cands []candidate) (string, []candidate) {
	return replaceDigitRunsWithRoman(n), cands
}

func passThePrefix(n string, cands []candidate) (string, []candidate) {
	return "The " + n, cands
}

func passAmpersand(n string, cands []candidate) (string, []candidate) {
	return andRe.ReplaceAllString(n, " & "), cands
}

func passStripQuotes(n string, cands []candidate) (string, []candidate) {
	out := make([]candidate, len(cands))
	for i, c := range cands {
		out[i] = candidate{name: quoteRe.ReplaceAllString(c.name, ""), game: c.game}
	}
	return n, out
}

func passColonDash(n string, cands []candidate) (string, []candidate) {
	out := make([]candidate, len(cands))
	for i, c := range cands {
		out[i] = candidate{name: colonDashRe.ReplaceAllString(c.name, " "), game: c.game}
	}
	return colonDashRe.ReplaceAllString(n, " "), out
}

// Match runs the multi-pass disambiguation pipeline and
// returns the single best-matching Game, or nil when no pass resolves.
func (m *Matcher) Match(ctx context.Context, req Request) (*Hit, error) {
	n := Sanitize(req.Name)

	hits, err := m.Search(ctx, n, false)
	if err != nil {
		return nil, err
	}

	cands := make([]candidate, len(hits))
	for i, h := range hits {
		cands[i] = candidate{name: Sanitize(h.Name), game: h}
	}

	for _, p := range passes {
		transN, transCands := p(n, cands)

		matched := matchSet(transN, transCands)
		switch len(matched) {
		case 0:
			continue
		case 1:
			return &matched[0].game, nil
		default:
			if req.ReleaseYear > 0 {
				if g := firstWithYear(matched, req.ReleaseYear); g != nil {
					return g, nil
				}
				continue // no tie-break member matched the year hint; try next pass
			}
			return tieBreakNoYear(matched), nil
		}
	}

	// P7: subtitle trim.
	for _, c := range cands {
		idx := strings.Index(c.name, ":")
		if idx < 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(c.name[:idx]), n) {
			hit := c.game
			return &hit, nil
		}
	}

	return nil, nil
}

func matchSet(n string, cands []candidate) []candidate {
	var m []candidate
	for _, c := range cands {
		if strings.EqualFold(c.name, n) {
			m = append(m, c)
		}
	}
	return m
}

func firstWithYear(m []candidate, year int) *Hit {
	for _, c := range m {
		if c.game.Game.FirstReleaseDate == 0 {
			continue
		}
		t := time.Unix(c.game.Game.FirstReleaseDate, 0).UTC()
		if t.Year() == year {
			hit := c.game
			return &hit
		}
	}
	return nil
}

// tieBreakNoYear implements the no-year-hint branch: if every candidate has
// no known release date, return M[0]; otherwise return the earliest with a
// valid date, or M[0] if none qualify.
func tieBreakNoYear(m []candidate) *Hit {
	allUnknown := true
	for _, c := range m {
		if c.game.Game.FirstReleaseDate != 0 {
			allUnknown = false
			break
		}
	}
	if allUnknown {
		return &m[0].game
	}

	var earliest *candidate
	for i := range m {
		if m[i].game.Game.FirstReleaseDate <= 0 {
			continue
		}
		if earliest == nil || m[i].game.Game.FirstReleaseDate < earliest.game.Game.FirstReleaseDate {
			earliest = &m[i]
		}
	}
	if earliest == nil {
		return &m[0].game
	}
	return &earliest.game
}
