//go:build wireinject
// +build wireinject

// Package wire declares the google/wire provider sets for the server.
// wire_gen.go is the hand-authored equivalent of what `wire` would emit —
// see DESIGN.md for why the generator itself is not invoked here.
package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sandpiper-dev/igdbmatch/internal/cache"
	"github.com/sandpiper-dev/igdbmatch/internal/config"
	"github.com/sandpiper-dev/igdbmatch/internal/events"
	"github.com/sandpiper-dev/igdbmatch/internal/facade"
	"github.com/sandpiper-dev/igdbmatch/internal/logging"
	"github.com/sandpiper-dev/igdbmatch/internal/matcher"
	"github.com/sandpiper-dev/igdbmatch/internal/mirror"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/telemetry"
	"github.com/sandpiper-dev/igdbmatch/internal/upstream"
	"github.com/sandpiper-dev/igdbmatch/internal/validate"
	"github.com/sandpiper-dev/igdbmatch/internal/webhookingress"
)

var ConfigSet = wire.NewSet(config.Load, logging.New)

var StoreSet = wire.NewSet(store.Connect)

var DomainSet = wire.NewSet(
	upstream.New,
	events.New,
	cache.New,
	validate.NewRegistry,
	mirror.NewGames,
	mirror.NewAlternativeNames,
	mirror.NewExternalGames,
	mirror.NewGameLocalizations,
	mirror.NewCompanies,
	matcher.New,
	facade.New,
	webhookingress.New,
)

// InitializeApp is the injector wire would generate a body for.
func InitializeApp(ctx context.Context) (*App, func(), error) {
	panic(wire.Build(ConfigSet, StoreSet, DomainSet, telemetry.New, NewApp))
}
