package matcher

import (
	"context"
	"testing"

	"github.com/sandpiper-dev/igdbmatch/internal/store"
)

// TestSearchDedupKeepsFirstPerGame covers law 7: with removeDuplicates,
// each Game.id appears at most once in the result, keeping the
// higher-scored occurrence (primary-name hits are merged ahead of
// alternative-name hits for the same game).
func TestSearchDedupKeepsFirstPerGame(t *testing.T) {
	games := &fakeGames{games: []store.GameModel{
		{ID: 7, Name: "The Elder Scrolls V: Skyrim", Category: CategoryMainGame},
	}}
	alts := &fakeAltNames{alts: []store.AlternativeNameModel{
		{Name: "Skyrim", Game: 7},
	}}
	m := New(games, alts, games)

	hits, err := m.Search(context.Background(), "skyrim", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[uint64]int{}
	for _, h := range hits {
		seen[h.Game.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("game %d appeared %d times, want at most 1", id, n)
		}
	}
	if seen[7] != 1 {
		t.Fatalf("expected game 7 exactly once, got %+v", hits)
	}
}

// TestSearchOrderingNonIncreasing covers law 8: scores are sorted
// non-increasing across the merged result (without dedup).
func TestSearchOrderingNonIncreasing(t *testing.T) {
	games := &fakeGames{games: []store.GameModel{
		{ID: 1, Name: "Doom", Category: CategoryMainGame},
		{ID: 2, Name: "Doom Eternal", Category: CategoryMainGame},
		{ID: 3, Name: "Doom 3", Category: CategoryMainGame},
	}}
	m := New(games, &fakeAltNames{}, games)

	hits, err := m.Search(context.Background(), "doom", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) < 2 {
		t.Fatalf("expected multiple hits, got %d", len(hits))
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Fatalf("scores not non-increasing at index %d: %+v", i, hits)
		}
	}
}

// TestSearchAltNameHit covers E6: AlternativeName {name: "TESV", game: 7}
// surfaces game 7 ("The Elder Scrolls V: Skyrim") even though "TESV" shares
// no word token with the game's own name.
func TestSearchAltNameHit(t *testing.T) {
	games := &fakeGames{games: []store.GameModel{
		{ID: 7, Name: "The Elder Scrolls V: Skyrim", Category: CategoryMainGame},
	}}
	alts := &fakeAltNames{alts: []store.AlternativeNameModel{
		{Name: "TESV", Game: 7},
	}}
	m := New(games, alts, games)

	hits, err := m.Search(context.Background(), "TESV", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, h := range hits {
		if h.Game.ID == 7 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected game 7 among hits, got %+v", hits)
	}
}

// TestSearchAltNameDanglingReferenceDropped covers the local-recovery rule:
// an AlternativeName pointing at a game id that no longer resolves is
// dropped silently rather than surfacing a nil Game.
func TestSearchAltNameDanglingReferenceDropped(t *testing.T) {
	games := &fakeGames{}
	alts := &fakeAltNames{alts: []store.AlternativeNameModel{
		{Name: "Ghost", Game: 999},
	}}
	m := New(games, alts, games)

	hits, err := m.Search(context.Background(), "Ghost", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits for dangling reference, got %+v", hits)
	}
}
