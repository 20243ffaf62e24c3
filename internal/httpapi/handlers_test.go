package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
	"github.com/sandpiper-dev/igdbmatch/internal/facade"
	"github.com/sandpiper-dev/igdbmatch/internal/matcher"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/validate"
	"github.com/sandpiper-dev/igdbmatch/internal/webhookingress"
)

type stubGames struct {
	byID map[uint64]store.GameModel
}

func (s *stubGames) GetItem(ctx context.Context, id uint64) (*store.GameModel, error) {
	if g, ok := s.byID[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (s *stubGames) TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[store.GameModel], error) {
	var out []store.Scored[store.GameModel]
	for _, g := range s.byID {
		if g.Name == term {
			out = append(out, store.Scored[store.GameModel]{Score: 1, Item: g})
		}
	}
	return out, nil
}

type stubAltNames struct{}

func (stubAltNames) TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[store.AlternativeNameModel], error) {
	return nil, nil
}

type stubExternalGames struct{}

func (stubExternalGames) FindComposite(ctx context.Context, conditions map[string]interface{}) ([]store.ExternalGameModel, error) {
	return nil, nil
}

type stubMirror struct {
	added   []map[string]interface{}
	deleted []uint64
}

func (m *stubMirror) AddRaw(ctx context.Context, id uint64, raw map[string]interface{}) error {
	m.added = append(m.added, raw)
	return nil
}

func (m *stubMirror) DeleteRaw(ctx context.Context, id uint64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *stubMirror) {
	games := &stubGames{byID: map[uint64]store.GameModel{7: {ID: 7, Name: "The Elder Scrolls V: Skyrim"}}}
	m := matcher.New(games, stubAltNames{}, games)
	f := facade.New(games, stubExternalGames{}, m)

	schemas, err := validate.NewRegistry()
	if err != nil {
		t.Fatalf("build schema registry: %v", err)
	}
	mirror := &stubMirror{}
	cfg := &config.Config{WebHookSecret: "s3cr3t"}
	ingress := webhookingress.New(cfg, zap.NewNop(), map[string]webhookingress.Mirror{"games": mirror}, nil, schemas)

	app := fiber.New()
	New(f, ingress).Register(app)
	return app, mirror
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

func TestGetGameRoute(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := doJSON(t, app, "GET", "/igdb/game/7", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || data["Name"] != "The Elder Scrolls V: Skyrim" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

// TestGetGameNotFoundStillHTTP200 covers the envelope rule: application
// errors never change the HTTP status.
func TestGetGameNotFoundStillHTTP200(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := doJSON(t, app, "GET", "/igdb/game/999", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected HTTP 200 even for an application error, got %d", status)
	}
	if body["error"] != "Game not found." {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestSearchRoute(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := doJSON(t, app, "POST", "/igdb/search", map[string]string{"SearchTerm": "The Elder Scrolls V: Skyrim"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("expected one result, got %+v", body)
	}
}

func TestMetadataRouteNoMatchReturnsNullData(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := doJSON(t, app, "POST", "/igdb/metadata", map[string]interface{}{"Name": "does not exist"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if _, hasError := body["error"]; hasError {
		t.Fatalf("expected no error key for a no-match metadata request, got %+v", body)
	}
	if body["data"] != nil {
		t.Fatalf("expected null data, got %+v", body["data"])
	}
}

func TestWebhookRouteDispatchesToMirror(t *testing.T) {
	app, mirror := newTestApp(t)
	req := httptest.NewRequest("POST", "/igdb/webhooks/games/create", bytes.NewReader([]byte(`{"id": 42}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Secret", "s3cr3t")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(mirror.added) != 1 {
		t.Fatalf("expected one dispatched payload, got %d", len(mirror.added))
	}
}

func TestWebhookRouteRejectsBadSecret(t *testing.T) {
	app, mirror := newTestApp(t)
	req := httptest.NewRequest("POST", "/igdb/webhooks/games/create", bytes.NewReader([]byte(`{"id": 42}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Secret", "wrong")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 even on rejection, got %d", resp.StatusCode)
	}
	if len(mirror.added) != 0 {
		t.Fatalf("expected no dispatch on bad secret, got %d", len(mirror.added))
	}
}
