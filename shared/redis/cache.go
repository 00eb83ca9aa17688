package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/eaglebank/account-service/shared/logger"
	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a JSON-backed Redis cache for one record type T. Keys are the
// record id appended to a fixed prefix, so each repository owns its keyspace.
type ViewCache[T any] struct {
	client goredis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewViewCache binds a cache to prefix. A zero ttl stores keys without expiry.
func NewViewCache[T any](client goredis.Cmdable, prefix string, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl}
}

func (c *ViewCache[T]) key(id string) string {
	return c.prefix + id
}

// Get returns (nil, false) on a miss, a Redis failure or a payload that no longer decodes.
func (c *ViewCache[T]) Get(ctx context.Context, id string) (*T, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			logger.Warn("view cache read failed", logger.Fields{"key": c.key(id), "error": err.Error()})
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set stores value under id. Write failures are logged, never returned; the
// database stays the source of truth.
func (c *ViewCache[T]) Set(ctx context.Context, id string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("view cache marshal failed", err, logger.Fields{"key": c.key(id)})
		return
	}
	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		logger.Error("view cache write failed", err, logger.Fields{"key": c.key(id)})
	}
}

func (c *ViewCache[T]) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		logger.Error("view cache delete failed", err, logger.Fields{"key": c.key(id)})
	}
}
