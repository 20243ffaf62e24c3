package matcher

import (
	"context"
	"testing"
	"time"

	"github.com/sandpiper-dev/igdbmatch/internal/store"
)

// fakeGames is an in-memory stand-in for the Game mirror/store, scoring by
// the number of word tokens shared with the search term so tests can
// exercise real ranking behavior without a live full-text index.
type fakeGames struct {
	games []store.GameModel
}

func (f *fakeGames) TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[store.GameModel], error) {
	var out []store.Scored[store.GameModel]
	for _, g := range f.games {
		overlap := tokenOverlap(g.Name, term)
		if overlap == 0 {
			continue
		}
		out = append(out, store.Scored[store.GameModel]{Score: float64(overlap), Item: g})
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeGames) GetItem(ctx context.Context, id uint64) (*store.GameModel, error) {
	for _, g := range f.games {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

type fakeAltNames struct {
	alts []store.AlternativeNameModel
}

func (f *fakeAltNames) TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[store.AlternativeNameModel], error) {
	var out []store.Scored[store.AlternativeNameModel]
	for _, a := range f.alts {
		if !containsFold(a.Name, term) {
			continue
		}
		out = append(out, store.Scored[store.AlternativeNameModel]{Score: 1, Item: a})
	}
	return out, nil
}

// tokenOverlap approximates full-text search relevance by counting words
// shared between two strings, so fixtures don't need exact substrings (a
// real index matches "final fantasy 7" against "Final Fantasy VII" on
// shared tokens even though "7" and "VII" differ).
func tokenOverlap(s, term string) int {
	sTokens := tokenize(s)
	termTokens := tokenize(term)
	count := 0
	for _, tt := range termTokens {
		for _, st := range sTokens {
			if tt == st {
				count++
				break
			}
		}
	}
	return count
}

func tokenize(s string) []string {
	var tokens []string
	var cur []byte
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range lower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			cur = append(cur, byte(r))
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func containsFold(s, sub string) bool {
	sl, subl := lower(s), lower(sub)
	if subl == "" {
		return false
	}
	return indexOf(sl, subl) >= 0
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func epoch(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
}

// TestMatchE1RomanPass covers E1: "final fantasy 7" resolves to "Final
// Fantasy VII" via P2 after the identity pass fails.
func TestMatchE1RomanPass(t *testing.T) {
	games := &fakeGames{games: []store.GameModel{{ID: 10, Name: "Final Fantasy VII", Category: CategoryMainGame}}}
	m := New(games, &fakeAltNames{}, games)

	hit, err := m.Match(context.Background(), Request{Name: "final fantasy 7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit == nil || hit.Game.ID != 10 {
		t.Fatalf("expected game 10, got %+v", hit)
	}
}

// TestMatchE2YearDisambiguation covers E2: two "Prey" games, ReleaseYear
// hint picks the 2017 one.
func TestMatchE2YearDisambiguation(t *testing.T) {
	games := &fakeGames{games: []store.GameModel{
		{ID: 1, Name: "Prey", Category: CategoryMainGame, FirstReleaseDate: epoch(2006, 7, 11)},
		{ID: 2, Name: "Prey", Category: CategoryMainGame, FirstReleaseDate: epoch(2017, 5, 5)},
	}}
	m := New(games, &fakeAltNames{}, games)

	hit, err := m.Match(context.Background(), Request{Name: "Prey", ReleaseYear: 2017})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit == nil || hit.Game.ID != 2 {
		t.Fatalf("expected game 2, got %+v", hit)
	}
}

// TestMatchE3OldestWinsFallback covers E3: no year hint, tie broken by
// earliest release date.
func TestMatchE3OldestWinsFallback(t *testing.T) {
	games := &fakeGames{games: []store.GameModel{
		{ID: 1, Name: "Doom", Category: CategoryMainGame, FirstReleaseDate: epoch(1993, 12, 10)},
		{ID: 2, Name: "Doom", Category: CategoryMainGame, FirstReleaseDate: epoch(2016, 5, 13)},
	}}
	m := New(games, &fakeAltNames{}, games)

	hit, err := m.Match(context.Background(), Request{Name: "Doom"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit == nil || hit.Game.ID != 1 {
		t.Fatalf("expected game 1 (1993), got %+v", hit)
	}
}

// TestMatchE4SubtitleTrim covers E4: "Half-Life 2" resolves to "Half-Life
// 2: Episode One" via P7 after P6 fails (P6 turns the candidate into
// "Half Life 2 Episode One", which is not equal to "Half Life 2").
func TestMatchE4SubtitleTrim(t *testing.T) {
	games := &fakeGames{games: []store.GameModel{{ID: 5, Name: "Half-Life 2: Episode One", Category: CategoryMainGame}}}
	m := New(games, &fakeAltNames{}, games)

	hit, err := m.Match(context.Background(), Request{Name: "Half-Life 2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit == nil || hit.Game.ID != 5 {
		t.Fatalf("expected game 5, got %+v", hit)
	}
}

// TestMatchNoResult covers the case where nothing found by search: Match
// must return (nil, nil), never NotFound.
func TestMatchNoResult(t *testing.T) {
	games := &fakeGames{}
	m := New(games, &fakeAltNames{}, games)

	hit, err := m.Match(context.Background(), Request{Name: "does not exist anywhere"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit != nil {
		t.Fatalf("expected nil hit, got %+v", hit)
	}
}
