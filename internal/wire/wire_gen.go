//go:build !wireinject
// +build !wireinject

// Code generated by hand in place of `wire`; see wire.go and DESIGN.md.
package wire

import (
	"context"
	"fmt"

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

// InitializeApp constructs every component and returns a cleanup func that
// closes them in reverse dependency order.
func InitializeApp(ctx context.Context) (*App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	tp, err := telemetry.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build telemetry: %w", err)
	}

	db, err := store.Connect(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect store: %w", err)
	}

	uc := upstream.New(cfg)
	rc := cache.New(cfg, log)
	pub := events.New(cfg, log)

	schemas, err := validate.NewRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("build schema registry: %w", err)
	}

	games := mirror.NewGames(db, uc, cfg, log, pub, rc)
	altNames := mirror.NewAlternativeNames(db, uc, cfg, log, pub)
	externalGames := mirror.NewExternalGames(db, uc, cfg, log, pub)
	localizations := mirror.NewGameLocalizations(db, uc, cfg, log, pub)
	companies := mirror.NewCompanies(db, uc, cfg, log, pub)

	m := matcher.New(games, altNames, games)
	f := facade.New(games, externalGames, m)

	app := &App{
		Config:            cfg,
		Log:               log,
		Telemetry:         tp,
		DB:                db,
		Upstream:          uc,
		Cache:             rc,
		Events:            pub,
		Schemas:           schemas,
		Games:             games,
		AlternativeNames:  altNames,
		ExternalGames:     externalGames,
		GameLocalizations: localizations,
		Companies:         companies,
		Facade:            f,
	}
	app.Ingress = webhookingress.New(cfg, log, app.Mirrors(), pub, schemas)

	cleanup := func() {
		_ = pub.Close()
		if rc != nil {
			_ = rc.Close()
		}
		_ = store.Close(db)
		_ = tp.Shutdown(ctx)
		_ = log.Sync()
	}

	return app, cleanup, nil
}
