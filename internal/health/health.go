// Package health reports whether the store and the upstream catalog are
// reachable, adapted from localnerve-jam-build-propsdb's internal/services/health.go: the
// same {name, ok, error} result shape, minus the Authorizer-specific check
// this domain has no equivalent of.
package health

import (
	"context"

	"gorm.io/gorm"

	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/upstream"
)

// Result is one dependency's health status.
type Result struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report is the aggregate health check result.
type Report struct {
	OK      bool     `json:"ok"`
	Results []Result `json:"results"`
}

// Check pings the store and probes the upstream catalog's /count endpoint,
// returning an aggregate report. It never returns an error itself — a
// failed dependency is reported, not raised.
func Check(ctx context.Context, db *gorm.DB, uc *upstream.Client) Report {
	results := []Result{checkStore(db), checkUpstream(ctx, uc)}
	ok := true
	for _, r := range results {
		if !r.OK {
			ok = false
		}
	}
	return Report{OK: ok, Results: results}
}

func checkStore(db *gorm.DB) Result {
	if err := store.Ping(db); err != nil {
		return Result{Name: "store", OK: false, Error: err.Error()}
	}
	return Result{Name: "store", OK: true}
}

func checkUpstream(ctx context.Context, uc *upstream.Client) Result {
	if _, err := uc.SendStringRequest(ctx, "games/count", "fields id;", upstream.MethodQuery); err != nil {
		return Result{Name: "upstream", OK: false, Error: err.Error()}
	}
	return Result{Name: "upstream", OK: true}
}
