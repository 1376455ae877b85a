// Package cache is a read-through Redis cache for catalog reads. It is fully
// optional: with REDIS_ADDR unset every call is a no-op and handlers fall
// through to the database.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ProductCacheTTL = 10 * time.Minute

type Cache struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(log *zap.Logger) *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return &Cache{log: log}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return &Cache{rdb: rdb, log: log}
}

func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// Get unmarshals the cached value for key into dest, reporting a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePrefix drops every key under the given prefix. Called on catalog
// writes so listings never serve stale products.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !c.Enabled() {
		return
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("cache invalidate failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
