package facade

import (
	"context"
	"testing"

	"github.com/sandpiper-dev/igdbmatch/internal/matcher"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/types"
)

type fakeGames struct {
	byID map[uint64]store.GameModel
}

func (f *fakeGames) GetItem(ctx context.Context, id uint64) (*store.GameModel, error) {
	if g, ok := f.byID[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (f *fakeGames) TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[store.GameModel], error) {
	var out []store.Scored[store.GameModel]
	for _, g := range f.byID {
		if g.Name == term {
			out = append(out, store.Scored[store.GameModel]{Score: 1, Item: g})
		}
	}
	return out, nil
}

type fakeAltNames struct{}

func (f *fakeAltNames) TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[store.AlternativeNameModel], error) {
	return nil, nil
}

type fakeExternalGames struct {
	rows []store.ExternalGameModel
}

func (f *fakeExternalGames) FindComposite(ctx context.Context, conditions map[string]interface{}) ([]store.ExternalGameModel, error) {
	var out []store.ExternalGameModel
	for _, r := range f.rows {
		if r.Uid == conditions["uid"] && r.Category == conditions["category"] {
			out = append(out, r)
		}
	}
	return out, nil
}

func newFacade(games *fakeGames, external *fakeExternalGames) *Facade {
	m := matcher.New(games, &fakeAltNames{}, games)
	return New(games, external, m)
}

func TestGetGameRejectsZeroID(t *testing.T) {
	f := newFacade(&fakeGames{byID: map[uint64]store.GameModel{}}, &fakeExternalGames{})
	_, err := f.GetGame(context.Background(), 0)
	if !types.IsBadInput(err) {
		t.Fatalf("expected BadInput, got %v", err)
	}
}

func TestGetGameNotFound(t *testing.T) {
	f := newFacade(&fakeGames{byID: map[uint64]store.GameModel{}}, &fakeExternalGames{})
	_, err := f.GetGame(context.Background(), 42)
	if !types.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetGameFound(t *testing.T) {
	f := newFacade(&fakeGames{byID: map[uint64]store.GameModel{7: {ID: 7, Name: "Skyrim"}}}, &fakeExternalGames{})
	game, err := f.GetGame(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game == nil || game.ID != 7 {
		t.Fatalf("expected game 7, got %+v", game)
	}
}

func TestSearchRejectsEmptyTerm(t *testing.T) {
	f := newFacade(&fakeGames{byID: map[uint64]store.GameModel{}}, &fakeExternalGames{})
	_, err := f.Search(context.Background(), "   ")
	if !types.IsBadInput(err) {
		t.Fatalf("expected BadInput, got %v", err)
	}
}

// TestGetMetadataExternalShortcutSkipsMatching covers law 9: when the
// external-store shortcut resolves, no name-matching is performed — the
// fake matcher's game data never even mentions the requested name.
func TestGetMetadataExternalShortcutSkipsMatching(t *testing.T) {
	games := &fakeGames{byID: map[uint64]store.GameModel{7: {ID: 7, Name: "The Elder Scrolls V: Skyrim"}}}
	external := &fakeExternalGames{rows: []store.ExternalGameModel{
		{Uid: "72850", Category: 1, Game: 7},
	}}
	f := newFacade(games, external)

	game, err := f.GetMetadata(context.Background(), MetadataRequest{
		Name:      "this name would never match anything",
		LibraryId: "CB91DFC9-B977-43BF-8E70-55F46E410FAB",
		GameId:    "72850",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game == nil || game.ID != 7 {
		t.Fatalf("expected game 7 via external shortcut, got %+v", game)
	}
}

// TestGetMetadataFallsThroughToMatcher covers the case where LibraryId or
// GameId is absent: GetMetadata falls through to name matching.
func TestGetMetadataFallsThroughToMatcher(t *testing.T) {
	games := &fakeGames{byID: map[uint64]store.GameModel{1: {ID: 1, Name: "Doom", Category: matcher.CategoryMainGame}}}
	f := newFacade(games, &fakeExternalGames{})

	game, err := f.GetMetadata(context.Background(), MetadataRequest{Name: "Doom"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game == nil || game.ID != 1 {
		t.Fatalf("expected game 1 via matcher fallback, got %+v", game)
	}
}

// TestGetMetadataNoMatchReturnsNilNotError covers the "never NotFound" rule:
// GetMetadata returns a nil payload on no match, not an error.
func TestGetMetadataNoMatchReturnsNilNotError(t *testing.T) {
	f := newFacade(&fakeGames{byID: map[uint64]store.GameModel{}}, &fakeExternalGames{})

	game, err := f.GetMetadata(context.Background(), MetadataRequest{Name: "does not exist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game != nil {
		t.Fatalf("expected nil game, got %+v", game)
	}
}

// TestGetMetadataUnknownLibraryIdFallsThrough covers a LibraryId outside
// the fixed four-entry table: the shortcut is a no-op, not an error.
func TestGetMetadataUnknownLibraryIdFallsThrough(t *testing.T) {
	games := &fakeGames{byID: map[uint64]store.GameModel{1: {ID: 1, Name: "Doom", Category: matcher.CategoryMainGame}}}
	f := newFacade(games, &fakeExternalGames{})

	game, err := f.GetMetadata(context.Background(), MetadataRequest{
		Name:      "Doom",
		LibraryId: "not-a-real-library-id",
		GameId:    "123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game == nil || game.ID != 1 {
		t.Fatalf("expected fallthrough match to game 1, got %+v", game)
	}
}
