// Package cache implements a Redis-backed cache keyed by namespace and id,
// wired to the Game mirror only. The Game mirror invalidates entries on
// Add/Delete and drops the namespace on clone; its GetItem reads the store
// directly and does not consult this cache, and nothing in the service calls
// Get or Set. Grounded on the redis/go-redis/v9 usage in
// cuihairu-croupier/services/server/internal/svc/servicecontext.go
// (redis.ParseURL + redis.NewClient wiring).
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
)

// Cache is a thin wrapper over a Redis client. Entries are invalidated on
// Add/Delete for the same id; a clone drops the whole namespace.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New connects to Redis. Returns nil (a valid, always-miss Cache) when
// cfg.RedisAddr is empty, so callers can wire the cache unconditionally.
func New(cfg *config.Config, log *zap.Logger) *Cache {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &Cache{client: client, ttl: cfg.CacheTTL, log: log}
}

func key(namespace string, id uint64) string {
	return fmt.Sprintf("igdbmatch:%s:%d", namespace, id)
}

// Get returns the cached decoded value and true on hit, or false on miss
// (including when c is nil, so callers can treat a disabled cache as an
// unconditional miss).
func Get[T any](ctx context.Context, c *Cache, namespace string, id uint64) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	raw, err := c.client.Get(ctx, key(namespace, id)).Bytes()
	if err != nil {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false
	}
	return v, true
}

// Set stores value under namespace/id with the configured TTL.
func Set[T any](ctx context.Context, c *Cache, namespace string, id uint64, value T) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(namespace, id), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("namespace", namespace), zap.Uint64("id", id), zap.Error(err))
	}
}

// Invalidate drops one cached entry, satisfying mirror.Cache.
func (c *Cache) Invalidate(ctx context.Context, namespace string, id uint64) {
	if c == nil {
		return
	}
	_ = c.client.Del(ctx, key(namespace, id)).Err()
}

// InvalidateNamespace drops every cached entry for a namespace, satisfying
// mirror.Cache — used when CloneCollection replaces a collection wholesale.
func (c *Cache) InvalidateNamespace(ctx context.Context, namespace string) {
	if c == nil {
		return
	}
	pattern := key(namespace, 0)[:len(key(namespace, 0))-1] + "*"
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
