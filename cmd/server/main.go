// main.go
//
// A scalable, high performance drop-in replacement for the jam-build nodejs data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-propsdb.
// jam-build-propsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-propsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-propsdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// @title IGDB Match API
// @version 1.0.0
// @description Game-metadata mirror and fuzzy title-matching service
// @termsOfService http://swagger.io/terms/

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/health"
	"github.com/sandpiper-dev/igdbmatch/internal/httpapi"
	"github.com/sandpiper-dev/igdbmatch/internal/scheduler"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/wire"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		zap.NewExample().Fatal("failed to initialize application", zap.Error(err))
	}
	defer cleanup()

	if err := autoMigrate(app); err != nil {
		app.Log.Fatal("failed to run migrations", zap.Error(err))
	}

	run := scheduler.New(app.Log, ctx)
	for entity, m := range app.Mirrors() {
		cloneable, ok := m.(scheduler.Mirror)
		if !ok {
			continue
		}
		if err := run.ScheduleReclone(app.Config.ReCloneCron, entity, cloneable); err != nil {
			app.Log.Fatal("failed to schedule reclone", zap.String("entity", entity), zap.Error(err))
		}
	}
	run.Start()
	defer run.Stop()

	fiberApp := fiber.New(fiber.Config{ErrorHandler: customErrorHandler})
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(compress.New())

	prom := fiberprometheus.New("igdbmatch")
	prom.RegisterAt(fiberApp, "/metrics")
	fiberApp.Use(prom.Middleware)

	fiberApp.Get("/swagger/*", swagger.HandlerDefault)

	fiberApp.Get("/healthz", func(c *fiber.Ctx) error {
		report := health.Check(c.Context(), app.DB, app.Upstream)
		status := fiber.StatusOK
		if !report.OK {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(report)
	})

	handler := httpapi.New(app.Facade, app.Ingress)
	handler.Register(fiberApp)

	go func() {
		<-ctx.Done()
		app.Log.Info("shutting down")
		_ = fiberApp.ShutdownWithTimeout(10 * time.Second)
	}()

	port := app.Config.Port
	app.Log.Info("starting server", zap.String("port", port))
	if err := fiberApp.Listen(":" + port); err != nil {
		app.Log.Fatal("server stopped with error", zap.Error(err))
	}
	app.Log.Info("server stopped")
}

func autoMigrate(app *wire.App) error {
	return store.AutoMigrate(app.DB)
}

// customErrorHandler handles framework-level errors (routing, body parse
// panics recovered above); application-level errors are already mapped to
// the {error} envelope by internal/httpapi before reaching this handler.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
