// Package mirror implements one collection mirror per upstream entity
// class: clone-from-upstream, point/bulk lookup, webhook registration, and
// webhook event application. Per-entity mirrors are
// generated by instantiating a shared Base[T] with a store.Collection[T]
// and an upstream.Client, following the ports/adapter split in
// cuihairu-croupier's internal/ports/games.go +
// internal/repo/gorm/games/repo.go: a narrow domain interface, a
// GORM-backed implementation, and a thin adapter that keeps the decode
// logic per entity.
package mirror

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
	"github.com/sandpiper-dev/igdbmatch/internal/store"
	"github.com/sandpiper-dev/igdbmatch/internal/types"
	"github.com/sandpiper-dev/igdbmatch/internal/upstream"
)

// pageSize is the fixed clone page size.
const pageSize = 500

// progressEvery is the reporting interval.
const progressEvery = 5000

// cloneLocks serializes CloneCollection per collection name with an
// in-process mutex map, ensuring at most one clone per collection runs at
// a time. No example repo in the corpus reaches for a distributed lock
// for a single-process background job of this shape — see DESIGN.md.
var cloneLocks sync.Map // map[string]*sync.Mutex

func lockFor(name string) *sync.Mutex {
	v, _ := cloneLocks.LoadOrStore(name, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Collection is a mirror's public contract, narrowed to what the matcher
// and facade consume.
type Collection[T any] interface {
	GetItem(ctx context.Context, id uint64) (*T, error)
	GetItems(ctx context.Context, ids []uint64) ([]T, error)
	Add(ctx context.Context, items []T) error
	Delete(ctx context.Context, id uint64) error
	CloneCollection(ctx context.Context) error
	ConfigureWebhooks(ctx context.Context, currentWebhooks []string) error
}

// EventPublisher is the narrow contract for delta fan-out. Base holds one
// but does not publish through it; webhook deltas are published by
// webhookingress after dispatch, and clones publish nothing. Defined in this
// package (rather than imported from internal/events) to keep mirror
// decoupled from the Kafka wiring; internal/events.Publisher satisfies it.
type EventPublisher interface {
	PublishDelta(ctx context.Context, entity, method string, id uint64) error
}

// Cache is the narrow cache contract consumed by Base[T] for invalidation on
// Add/Delete/clone.
type Cache interface {
	Invalidate(ctx context.Context, namespace string, id uint64)
	InvalidateNamespace(ctx context.Context, namespace string)
}

// Base is the shared generic implementation every per-entity mirror
// instantiates over a value-typed Collection[T] — no virtual dispatch
// needed.
type Base[T any, PT interface {
	*T
	store.Identified
}] struct {
	Entity   string // e.g. "games", used as the upstream endpoint and log field
	store    *store.Collection[T, PT]
	upstream *upstream.Client
	cfg      *config.Config
	log      *zap.Logger
	events   EventPublisher // optional, may be nil
	cache    Cache          // optional, may be nil; only Game wires one
	decode   func([]map[string]interface{}) ([]T, error)
	idOf     func(T) uint64
}

// NewBase constructs a Base[T] mirror.
func NewBase[T any, PT interface {
	*T
	store.Identified
}](
	entity string,
	sc *store.Collection[T, PT],
	uc *upstream.Client,
	cfg *config.Config,
	log *zap.Logger,
	decode func([]map[string]interface{}) ([]T, error),
	idOf func(T) uint64,
	events EventPublisher,
	cache Cache,
) *Base[T, PT] {
	return &Base[T, PT]{
		Entity:   entity,
		store:    sc,
		upstream: uc,
		cfg:      cfg,
		log:      log.With(zap.String("entity", entity)),
		events:   events,
		cache:    cache,
		decode:   decode,
		idOf:     idOf,
	}
}

func (b *Base[T, PT]) GetItem(ctx context.Context, id uint64) (*T, error) {
	return b.store.GetItem(ctx, id)
}

func (b *Base[T, PT]) GetItems(ctx context.Context, ids []uint64) ([]T, error) {
	return b.store.GetItems(ctx, ids)
}

func (b *Base[T, PT]) Add(ctx context.Context, items []T) error {
	if err := b.store.Add(ctx, items); err != nil {
		return err
	}
	if b.cache != nil {
		for _, item := range items {
			b.cache.Invalidate(ctx, b.Entity, b.idOf(item))
		}
	}
	return nil
}

// FindComposite exposes the store's composite-equality lookup, used by the
// façade's external-store shortcut over ExternalGame.
func (b *Base[T, PT]) FindComposite(ctx context.Context, conditions map[string]interface{}) ([]T, error) {
	return b.store.FindComposite(ctx, conditions)
}

// TextSearch exposes the store's text search, satisfying the matcher's
// GameSearcher/AlternativeNameSearcher over the Game and AlternativeName
// mirrors respectively.
func (b *Base[T, PT]) TextSearch(ctx context.Context, term string, limit int, extraWhere string, extraArgs ...interface{}) ([]store.Scored[T], error) {
	return b.store.TextSearch(ctx, term, limit, extraWhere, extraArgs...)
}

func (b *Base[T, PT]) Delete(ctx context.Context, id uint64) error {
	if err := b.store.Delete(ctx, id); err != nil {
		return err
	}
	if b.cache != nil {
		b.cache.Invalidate(ctx, b.Entity, id)
	}
	return nil
}

// AddRaw decodes a single webhook payload through the same decoder used for
// clone pages and upserts it, satisfying webhookingress.Mirror without
// leaking T into that package.
func (b *Base[T, PT]) AddRaw(ctx context.Context, id uint64, raw map[string]interface{}) error {
	items, err := b.decode([]map[string]interface{}{raw})
	if err != nil {
		return err
	}
	return b.Add(ctx, items)
}

// DeleteRaw satisfies webhookingress.Mirror.
func (b *Base[T, PT]) DeleteRaw(ctx context.Context, id uint64) error {
	return b.Delete(ctx, id)
}

// CloneCollection drops the collection, recreates its indexes, then pages
// the upstream in fixed blocks of 500 until a short/empty page ends the
// clone. A failure mid-page aborts the clone, leaving the
// collection at its current page; the next clone drops and retries.
func (b *Base[T, PT]) CloneCollection(ctx context.Context) error {
	lock := lockFor(b.Entity)
	if !lock.TryLock() {
		return fmt.Errorf("clone already in progress for %s", b.Entity)
	}
	defer lock.Unlock()

	start := time.Now()
	if err := b.store.DropCollection(ctx); err != nil {
		return fmt.Errorf("clone %s: %w", b.Entity, err)
	}
	if b.cache != nil {
		b.cache.InvalidateNamespace(ctx, b.Entity)
	}

	total := 0
	for offset := 0; ; offset += pageSize {
		query := upstream.BuildCloneQuery(pageSize, offset)
		body, err := b.upstream.SendStringRequest(ctx, b.Entity, query, upstream.MethodQuery)
		if err != nil {
			return types.UpstreamFailure(fmt.Sprintf("clone %s: %v", b.Entity, err))
		}

		raw, err := decodeRaw(body)
		if err != nil {
			return types.UpstreamFailure(fmt.Sprintf("clone %s: malformed page: %v", b.Entity, err))
		}
		if len(raw) == 0 {
			break
		}

		items, err := b.decode(raw)
		if err != nil {
			return types.UpstreamFailure(fmt.Sprintf("clone %s: decode page: %v", b.Entity, err))
		}
		if err := b.store.Add(ctx, items); err != nil {
			return fmt.Errorf("clone %s: add page: %w", b.Entity, err)
		}

		total += len(items)
		if total%progressEvery < pageSize {
			b.log.Info("clone progress", zap.Int("cloned", total), zap.Duration("elapsed", time.Since(start)))
		}

		if len(raw) < pageSize {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	b.log.Info("clone complete", zap.Int("cloned", total), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// ConfigureWebhooks registers {create, update, delete} hooks for this
// entity's endpoint if not already present in currentWebhooks. Missing
// WebHookRootAddress/WebHookSecret is fatal.
func (b *Base[T, PT]) ConfigureWebhooks(ctx context.Context, currentWebhooks []string) error {
	if !b.cfg.WebhooksConfigured() {
		return types.ConfigMissing("WebHookRootAddress and WebHookSecret are required to configure webhooks")
	}

	present := make(map[string]bool, len(currentWebhooks))
	for _, w := range currentWebhooks {
		present[w] = true
	}

	for _, method := range []string{"create", "update", "delete"} {
		callback := fmt.Sprintf("%s/%s/%s", b.cfg.WebHookRootAddress, b.Entity, method)
		if present[callback] {
			continue
		}
		form := upstream.BuildWebhookForm(method, b.cfg.WebHookSecret, callback)
		body, err := b.upstream.SendStringRequest(ctx, b.Entity+"/webhooks", form, upstream.MethodForm)
		if err != nil {
			return types.UpstreamFailure(fmt.Sprintf("configure webhook %s/%s: %v", b.Entity, method, err))
		}
		hooks, err := decodeRaw(body)
		if err != nil {
			return types.UpstreamFailure(fmt.Sprintf("configure webhook %s/%s: malformed response: %v", b.Entity, method, err))
		}
		activeCount := 0
		for _, h := range hooks {
			if active, _ := h["active"].(bool); active {
				activeCount++
			}
		}
		if activeCount == 0 {
			return types.UpstreamFailure(fmt.Sprintf("configure webhook %s/%s: no active webhook returned", b.Entity, method))
		}
	}
	return nil
}
