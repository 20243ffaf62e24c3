// Package webhookingress validates incoming upstream change
// events and forwards them to the owning collection mirror.
package webhookingress

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
	"github.com/sandpiper-dev/igdbmatch/internal/types"
	"github.com/sandpiper-dev/igdbmatch/internal/validate"
)

// Mirror is the narrow slice of mirror.Collection[T] ingress needs: apply a
// create/update via Add, a delete via Delete. Declared with uint64 ids only
// so Ingress can hold one map of heterogeneous mirrors without generics
// leaking into this package.
type Mirror interface {
	AddRaw(ctx context.Context, id uint64, raw map[string]interface{}) error
	DeleteRaw(ctx context.Context, id uint64) error
}

// EventPublisher is the narrow contract for best-effort delta fan-out after a
// successful dispatch.
type EventPublisher interface {
	PublishDelta(ctx context.Context, entity, method string, id uint64) error
}

// Ingress dispatches validated webhook payloads to the owning mirror.
type Ingress struct {
	cfg     *config.Config
	log     *zap.Logger
	mirrors map[string]Mirror
	events  EventPublisher
	schemas *validate.Registry
}

// New builds an Ingress over the given entity -> Mirror map.
func New(cfg *config.Config, log *zap.Logger, mirrors map[string]Mirror, events EventPublisher, schemas *validate.Registry) *Ingress {
	return &Ingress{cfg: cfg, log: log, mirrors: mirrors, events: events, schemas: schemas}
}

// Handle validates secret against the configured shared secret using a
// constant-time comparison, validates body against the entity's registered
// schema, then dispatches create/update -> Add, delete -> Delete

func (i *Ingress) Handle(ctx context.Context, entity, method, secret string, body []byte) error {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(i.cfg.WebHookSecret)) != 1 {
		return types.BadInput("invalid webhook secret")
	}

	mirror, ok := i.mirrors[entity]
	if !ok {
		return types.BadInput(fmt.Sprintf("unknown webhook entity %q", entity))
	}

	if err := i.schemas.Validate(entity, body); err != nil {
		return types.BadInput(fmt.Sprintf("payload failed validation: %v", err))
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.BadInput(fmt.Sprintf("malformed payload: %v", err))
	}
	id := asUint64(payload["id"])
	if id == 0 {
		return types.BadInput("payload missing id")
	}

	var dispatchErr error
	switch method {
	case "create", "update":
		dispatchErr = mirror.AddRaw(ctx, id, payload)
	case "delete":
		dispatchErr = mirror.DeleteRaw(ctx, id)
	default:
		return types.BadInput(fmt.Sprintf("unknown webhook method %q", method))
	}
	if dispatchErr != nil {
		return dispatchErr
	}

	if i.events != nil {
		if err := i.events.PublishDelta(ctx, entity, method, id); err != nil {
			i.log.Warn("delta publish failed", zap.String("entity", entity), zap.String("method", method), zap.Uint64("id", id), zap.Error(err))
		}
	}
	return nil
}

func asUint64(v interface{}) uint64 {
	switch n := v.(type) {
	case float64:
		return uint64(n)
	default:
		return 0
	}
}
