// Package facade implements the query façade: GetGame, Search, and
// GetMetadata over the collection mirrors and the matcher. It is
// framework-free — no *fiber.Ctx here — following the ports/adapter split
// httpapi will sit on top of, per cuihairu-croupier's handler/service
// separation.
package facade

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sandpiper-dev/igdbmatch/internal/matcher"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/types"
)

// Games is the Game mirror's point-lookup surface, as consumed by the façade.
type Games interface {
	GetItem(ctx context.Context, id uint64) (*store.GameModel, error)
}

// ExternalGames is the ExternalGame mirror's composite-lookup surface,
// used by the external-store shortcut.
type ExternalGames interface {
	FindComposite(ctx context.Context, conditions map[string]interface{}) ([]store.ExternalGameModel, error)
}

// MetadataRequest mirrors the HTTP metadata request body.
type MetadataRequest struct {
	Name        string
	ReleaseYear int
	LibraryId   string
	GameId      string
}

// Facade is the query façade.
type Facade struct {
	games    Games
	external ExternalGames
	matcher  *matcher.Matcher
}

// New builds a Facade.
func New(games Games, external ExternalGames, m *matcher.Matcher) *Facade {
	return &Facade{games: games, external: external, matcher: m}
}

// GetGame looks up a game by id.
func (f *Facade) GetGame(ctx context.Context, id uint64) (*store.GameModel, error) {
	if id == 0 {
		return nil, types.BadInput("No ID specified.")
	}
	game, err := f.games.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, types.NotFound("Game not found.")
	}
	return game, nil
}

// Search returns the deduped result set, games only, scores discarded.
func (f *Facade) Search(ctx context.Context, term string) ([]store.GameModel, error) {
	if strings.TrimSpace(term) == "" {
		return nil, types.BadInput("No search term")
	}
	hits, err := f.matcher.Search(ctx, term, true)
	if err != nil {
		return nil, err
	}
	games := make([]store.GameModel, len(hits))
	for i, h := range hits {
		games[i] = h.Game
	}
	return games, nil
}

// GetMetadata tries the external-id shortcut first; on miss, falls through
// to Matcher.Match. The result is always non-error, with a nil payload
// when no match is found — GetMetadata never surfaces NotFound.
func (f *Facade) GetMetadata(ctx context.Context, req MetadataRequest) (*store.GameModel, error) {
	if game, err := f.externalShortcut(ctx, req); err != nil {
		return nil, err
	} else if game != nil {
		return game, nil
	}

	hit, err := f.matcher.Match(ctx, matcher.Request{Name: req.Name, ReleaseYear: req.ReleaseYear})
	if err != nil {
		return nil, err
	}
	if hit == nil {
		return nil, nil
	}
	return &hit.Game, nil
}

// externalShortcut: when LibraryId parses as a UUID and its canonical form
// resolves against the fixed table, and GameId is non-empty, look the pair
// up in ExternalGame and resolve straight to Game, bypassing the matcher
// entirely. A LibraryId that fails to parse is treated the same as a
// missing one: the shortcut no-ops and GetMetadata falls through to the
// matcher.
func (f *Facade) externalShortcut(ctx context.Context, req MetadataRequest) (*store.GameModel, error) {
	if req.LibraryId == "" || req.GameId == "" {
		return nil, nil
	}
	libraryID, err := uuid.Parse(req.LibraryId)
	if err != nil {
		return nil, nil
	}
	category, ok := libraryIDCategories[strings.ToUpper(libraryID.String())]
	if !ok {
		return nil, nil
	}

	matches, err := f.external.FindComposite(ctx, map[string]interface{}{
		"uid":      req.GameId,
		"category": category,
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	return f.games.GetItem(ctx, matches[0].Game)
}
