package wire

import (
	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/cache"
	"github.com/sandpiper-dev/igdbmatch/internal/config"
	"github.com/sandpiper-dev/igdbmatch/internal/events"
	"github.com/sandpiper-dev/igdbmatch/internal/facade"
	"github.com/sandpiper-dev/igdbmatch/internal/mirror"
	"github.com/sandpiper-dev/igdbmatch/internal/telemetry"
	"github.com/sandpiper-dev/igdbmatch/internal/upstream"
	"github.com/sandpiper-dev/igdbmatch/internal/validate"
	"github.com/sandpiper-dev/igdbmatch/internal/webhookingress"

	"gorm.io/gorm"
)

// App bundles every component cmd/server and cmd/mirrorctl need, assembled
// by InitializeApp.
type App struct {
	Config    *config.Config
	Log       *zap.Logger
	Telemetry *telemetry.Provider
	DB        *gorm.DB
	Upstream  *upstream.Client
	Cache     *cache.Cache
	Events    events.Publisher
	Schemas   *validate.Registry

	Games             *mirror.Games
	AlternativeNames  *mirror.AlternativeNames
	ExternalGames     *mirror.ExternalGames
	GameLocalizations *mirror.GameLocalizations
	Companies         *mirror.Companies

	Facade  *facade.Facade
	Ingress *webhookingress.Ingress
}

// Mirrors returns every collection mirror keyed by entity name, for wiring into
// webhookingress and the scheduler.
func (a *App) Mirrors() map[string]webhookingress.Mirror {
	return map[string]webhookingress.Mirror{
		"games":              a.Games,
		"alternative_names":  a.AlternativeNames,
		"external_games":     a.ExternalGames,
		"game_localizations": a.GameLocalizations,
		"companies":          a.Companies,
	}
}
