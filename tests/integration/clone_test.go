// Package integration exercises the collection mirror against a real
// MySQL container and a stub upstream HTTP server, the way
// localnerve-jam-build-propsdb's tests/integration suite drives its own
// handlers against a containerized database.
package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
	"github.com/sandpiper-dev/igdbmatch/internal/mirror"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/upstream"
	"github.com/sandpiper-dev/igdbmatch/tests/helpers"
)

// fakeUpstream serves pageOne for the offset-0 query and an empty page for
// any other offset, so every CloneCollection sees the same catalog and
// terminates deterministically.
func fakeUpstream(t *testing.T, pageOne []map[string]interface{}) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		query, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(query), "offset 0;") {
			_, _ = w.Write([]byte("[]"))
			return
		}
		if err := json.NewEncoder(w).Encode(pageOne); err != nil {
			t.Fatalf("encode fake upstream page: %v", err)
		}
	}))
}

// TestCloneCollectionMonotonicity covers law 6: after CloneCollection
// completes, the local item count equals the number of rows the upstream
// served.
func TestCloneCollectionMonotonicity(t *testing.T) {
	sc, err := helpers.CreateStoreContainer(t, "igdbmatch_clone_test")
	if err != nil {
		t.Fatalf("start store container: %v", err)
	}
	defer sc.Terminate(t)

	cfg := &config.Config{StoreDriver: "mysql", StoreDSN: sc.DSN, StoreConnectionLimit: 5}
	log := zap.NewNop()

	db, err := store.Connect(cfg, log)
	if err != nil {
		t.Fatalf("connect to store: %v", err)
	}
	defer store.Close(db)

	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	page := []map[string]interface{}{
		{"id": 1, "name": "Doom", "category": 0, "first_release_date": 755913600},
		{"id": 2, "name": "Doom II", "category": 0, "first_release_date": 786931200},
		{"id": 3, "name": "Doom 3", "category": 0, "first_release_date": 1092960000},
	}
	srv := fakeUpstream(t, page)
	defer srv.Close()

	upCfg := &config.Config{UpstreamBaseUrl: srv.URL, UpstreamAuthToken: "test-token"}
	uc := upstream.New(upCfg)

	games := mirror.NewGames(db, uc, cfg, log, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := games.CloneCollection(ctx); err != nil {
		t.Fatalf("clone collection: %v", err)
	}

	got, err := games.GetItems(ctx, []uint64{1, 2, 3})
	if err != nil {
		t.Fatalf("get items: %v", err)
	}
	if len(got) != len(page) {
		t.Fatalf("expected %d items after clone, got %d", len(page), len(got))
	}

	// A second clone drops and reclones; the count must still match
	// (monotonicity holds across repeated clones, not just the first).
	if err := games.CloneCollection(ctx); err != nil {
		t.Fatalf("second clone collection: %v", err)
	}
	got, err = games.GetItems(ctx, []uint64{1, 2, 3})
	if err != nil {
		t.Fatalf("get items after second clone: %v", err)
	}
	if len(got) != len(page) {
		t.Fatalf("expected %d items after second clone, got %d", len(page), len(got))
	}
}
