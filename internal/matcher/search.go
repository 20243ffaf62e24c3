package matcher

import (
	"context"
	"sort"

	"github.com/sandpiper-dev/igdbmatch/internal/store"
)

const searchLimit = 30

// GameSearcher is Store's text-search surface over Game, consumed narrowly
// by the primary-name search.
type GameSearcher interface {
	TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[store.GameModel], error)
}

// AlternativeNameSearcher is Store's text-search surface over
// AlternativeName.
type AlternativeNameSearcher interface {
	TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[store.AlternativeNameModel], error)
}

// GameFetcher is the Game mirror's point-lookup surface, used to expand an
// AlternativeName hit's game id.
type GameFetcher interface {
	GetItem(ctx context.Context, id uint64) (*store.GameModel, error)
}

// Hit is one candidate produced by either search source: the store's text
// score, the (unsanitized) name that scored, and the resolved Game.
type Hit struct {
	Score float64
	Name  string
	Game  store.GameModel
}

// Matcher implements title matching over a GameSearcher,
// AlternativeNameSearcher, and GameFetcher.
type Matcher struct {
	games GameSearcher
	alts  AlternativeNameSearcher
	fetch GameFetcher
}

// New builds a Matcher.
func New(games GameSearcher, alts AlternativeNameSearcher, fetch GameFetcher) *Matcher {
	return &Matcher{games: games, alts: alts, fetch: fetch}
}

// searchByName runs Store.TextSearch(Game, term) filtered by
// category ∈ DefaultSearchCategories, limit 30.
func (m *Matcher) searchByName(ctx context.Context, term string) ([]Hit, error) {
	scored, err := m.games.TextSearch(ctx, term, searchLimit, "category IN ?", DefaultSearchCategories)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, len(scored))
	for i, s := range scored {
		hits[i] = Hit{Score: s.Score, Name: s.Item.Name, Game: s.Item}
	}
	return hits, nil
}

// searchByAlternativeNames runs Store.TextSearch(AlternativeName, term);
// each hit's game id is resolved via the Game mirror's GetItem, and hits
// whose game does not resolve are dropped.
func (m *Matcher) searchByAlternativeNames(ctx context.Context, term string) ([]Hit, error) {
	scored, err := m.alts.TextSearch(ctx, term, searchLimit, "")
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(scored))
	for _, s := range scored {
		game, err := m.fetch.GetItem(ctx, s.Item.Game)
		if err != nil || game == nil {
			continue // dangling reference, dropped silently
		}
		hits = append(hits, Hit{Score: s.Score, Name: s.Item.Name, Game: *game})
	}
	return hits, nil
}

// Search is the public Search: union of name-search and alt-name-search,
// sorted by descending text score; if removeDuplicates, retain only the
// first occurrence per Game.id. Primary-name results are concatenated
// before alternative-name results, both already score-sorted, so
// first-wins dedup keeps the higher-scored hit.
func (m *Matcher) Search(ctx context.Context, term string, removeDuplicates bool) ([]Hit, error) {
	byName, err := m.searchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	byAlt, err := m.searchByAlternativeNames(ctx, term)
	if err != nil {
		return nil, err
	}

	merged := make([]Hit, 0, len(byName)+len(byAlt))
	merged = append(merged, byName...)
	merged = append(merged, byAlt...)

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })

	if !removeDuplicates {
		return merged, nil
	}

	seen := make(map[uint64]bool, len(merged))
	deduped := make([]Hit, 0, len(merged))
	for _, h := range merged {
		if seen[h.Game.ID] {
			continue
		}
		seen[h.Game.ID] = true
		deduped = append(deduped, h)
	}
	return deduped, nil
}
