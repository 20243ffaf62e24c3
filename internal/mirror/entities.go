package mirror

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/upstream"

	"gorm.io/gorm"
)

// Games, AlternativeNames, ExternalGames, GameLocalizations, and Companies
// are the five per-entity mirrors this service maintains. Each instantiates
// the shared Base[T] with its own store.Collection, IndexSpec, and decoder.

type Games = Base[store.GameModel, *store.GameModel]
type AlternativeNames = Base[store.AlternativeNameModel, *store.AlternativeNameModel]
type ExternalGames = Base[store.ExternalGameModel, *store.ExternalGameModel]
type GameLocalizations = Base[store.GameLocalizationModel, *store.GameLocalizationModel]
type Companies = Base[store.CompanyModel, *store.CompanyModel]

// NewGames constructs the Game mirror. Game is the only mirror wired to a
// cache; the mirror invalidates cached entries on writes and clones, and its
// GetItem reads the store without consulting the cache.
func NewGames(db *gorm.DB, uc *upstream.Client, cfg *config.Config, log *zap.Logger, events EventPublisher, cache Cache) *Games {
	sc := store.NewCollection[store.GameModel, *store.GameModel](db, "IGDB_col_games", store.IndexSpec{
		TextField: "name",
		Ascending: []string{"category"},
	})
	return NewBase[store.GameModel, *store.GameModel]("games", sc, uc, cfg, log, decodeGames, func(g store.GameModel) uint64 { return g.ID }, events, cache)
}

func NewAlternativeNames(db *gorm.DB, uc *upstream.Client, cfg *config.Config, log *zap.Logger, events EventPublisher) *AlternativeNames {
	sc := store.NewCollection[store.AlternativeNameModel, *store.AlternativeNameModel](db, "IGDB_col_alternative_names", store.IndexSpec{
		TextField: "name",
		Ascending: []string{"game"},
	})
	return NewBase[store.AlternativeNameModel, *store.AlternativeNameModel]("alternative_names", sc, uc, cfg, log, decodeAlternativeNames, func(a store.AlternativeNameModel) uint64 { return a.ID }, events, nil)
}

func NewExternalGames(db *gorm.DB, uc *upstream.Client, cfg *config.Config, log *zap.Logger, events EventPublisher) *ExternalGames {
	sc := store.NewCollection[store.ExternalGameModel, *store.ExternalGameModel](db, "IGDB_col_external_games", store.IndexSpec{
		Composite: [][]string{{"uid", "category"}},
	})
	return NewBase[store.ExternalGameModel, *store.ExternalGameModel]("external_games", sc, uc, cfg, log, decodeExternalGames, func(e store.ExternalGameModel) uint64 { return e.ID }, events, nil)
}

func NewGameLocalizations(db *gorm.DB, uc *upstream.Client, cfg *config.Config, log *zap.Logger, events EventPublisher) *GameLocalizations {
	sc := store.NewCollection[store.GameLocalizationModel, *store.GameLocalizationModel](db, "IGDB_col_game_localizations", store.IndexSpec{
		TextField: "name",
		Ascending: []string{"game"},
	})
	return NewBase[store.GameLocalizationModel, *store.GameLocalizationModel]("game_localizations", sc, uc, cfg, log, decodeGameLocalizations, func(g store.GameLocalizationModel) uint64 { return g.ID }, events, nil)
}

func NewCompanies(db *gorm.DB, uc *upstream.Client, cfg *config.Config, log *zap.Logger, events EventPublisher) *Companies {
	sc := store.NewCollection[store.CompanyModel, *store.CompanyModel](db, "IGDB_col_companies", store.IndexSpec{})
	return NewBase[store.CompanyModel, *store.CompanyModel]("companies", sc, uc, cfg, log, decodeCompanies, func(c store.CompanyModel) uint64 { return c.ID }, events, nil)
}

func decodeGames(rows []map[string]interface{}) ([]store.GameModel, error) {
	out := make([]store.GameModel, 0, len(rows))
	for _, r := range rows {
		id := toUint64(r["id"])
		if id == 0 {
			return nil, fmt.Errorf("game row missing id")
		}
		out = append(out, store.GameModel{
			ID:               id,
			Name:             toString(r["name"]),
			Category:         toInt32(r["category"]),
			FirstReleaseDate: toInt64(r["first_release_date"]),
			Passthrough:      passthrough(r, "id", "name", "category", "first_release_date"),
		})
	}
	return out, nil
}

func decodeAlternativeNames(rows []map[string]interface{}) ([]store.AlternativeNameModel, error) {
	out := make([]store.AlternativeNameModel, 0, len(rows))
	for _, r := range rows {
		id := toUint64(r["id"])
		if id == 0 {
			return nil, fmt.Errorf("alternative_name row missing id")
		}
		out = append(out, store.AlternativeNameModel{
			ID:          id,
			Name:        toString(r["name"]),
			Game:        toUint64(r["game"]),
			Passthrough: passthrough(r, "id", "name", "game"),
		})
	}
	return out, nil
}

func decodeExternalGames(rows []map[string]interface{}) ([]store.ExternalGameModel, error) {
	out := make([]store.ExternalGameModel, 0, len(rows))
	for _, r := range rows {
		id := toUint64(r["id"])
		if id == 0 {
			return nil, fmt.Errorf("external_game row missing id")
		}
		out = append(out, store.ExternalGameModel{
			ID:          id,
			Uid:         toString(r["uid"]),
			Category:    toInt32(r["category"]),
			Game:        toUint64(r["game"]),
			Passthrough: passthrough(r, "id", "uid", "category", "game"),
		})
	}
	return out, nil
}

func decodeGameLocalizations(rows []map[string]interface{}) ([]store.GameLocalizationModel, error) {
	out := make([]store.GameLocalizationModel, 0, len(rows))
	for _, r := range rows {
		id := toUint64(r["id"])
		if id == 0 {
			return nil, fmt.Errorf("game_localization row missing id")
		}
		out = append(out, store.GameLocalizationModel{
			ID:          id,
			Name:        toString(r["name"]),
			Game:        toUint64(r["game"]),
			Passthrough: passthrough(r, "id", "name", "game"),
		})
	}
	return out, nil
}

func decodeCompanies(rows []map[string]interface{}) ([]store.CompanyModel, error) {
	out := make([]store.CompanyModel, 0, len(rows))
	for _, r := range rows {
		id := toUint64(r["id"])
		if id == 0 {
			return nil, fmt.Errorf("company row missing id")
		}
		out = append(out, store.CompanyModel{
			ID:          id,
			Passthrough: passthrough(r, "id"),
		})
	}
	return out, nil
}
