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

// mirrorctl is an operator CLI for the collection mirror: one-off clones,
// webhook (re)configuration, and an ad-hoc health probe, outside the
// request path the HTTP server serves.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/health"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/wire"
)

func main() {
	root := &cobra.Command{
		Use:   "mirrorctl",
		Short: "Operate the IGDB collection mirror",
	}
	root.AddCommand(cloneCmd(), configureWebhooksCmd(), healthcheckCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cloneCmd() *cobra.Command {
	var entity string
	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Drop and reclone one collection, or every collection if --entity is omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := wire.InitializeApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.AutoMigrate(app.DB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			mirrors := app.Mirrors()
			if entity != "" {
				if _, ok := mirrors[entity]; !ok {
					return fmt.Errorf("unknown entity %q", entity)
				}
				for name := range mirrors {
					if name != entity {
						delete(mirrors, name)
					}
				}
			}
			for name, m := range mirrors {
				cloneable, ok := m.(interface {
					CloneCollection(ctx context.Context) error
				})
				if !ok {
					continue
				}
				app.Log.Info("cloning", zap.String("entity", name))
				if err := cloneable.CloneCollection(ctx); err != nil {
					return fmt.Errorf("clone %s: %w", name, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&entity, "entity", "", "entity name to clone (default: all)")
	return cmd
}

func configureWebhooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure-webhooks",
		Short: "Register create/update/delete webhooks for every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := wire.InitializeApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			for name, m := range app.Mirrors() {
				app.Log.Info("configuring webhooks", zap.String("entity", name))
				configurable, ok := m.(interface {
					ConfigureWebhooks(ctx context.Context, currentWebhooks []string) error
				})
				if !ok {
					continue
				}
				if err := configurable.ConfigureWebhooks(ctx, nil); err != nil {
					return fmt.Errorf("configure webhooks %s: %w", name, err)
				}
			}
			return nil
		},
	}
}

func healthcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe store and upstream connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := wire.InitializeApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			report := health.Check(ctx, app.DB, app.Upstream)
			if !report.OK {
				return fmt.Errorf("unhealthy: %+v", report.Results)
			}
			fmt.Println("ok")
			return nil
		},
	}
}
