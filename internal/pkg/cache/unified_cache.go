package cache

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CacheMetrics tracks cache performance
type CacheMetrics struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// UnifiedCache is a typed view over a go-cache instance.
type UnifiedCache[T any] struct {
	items  *gocache.Cache
	ttl    time.Duration
	name   string
	logger *zap.Logger
	group  singleflight.Group

	hits, misses, sets atomic.Int64
}

// NewUnifiedCache creates a cache whose entries live for ttl. Expired entries
// are swept twice per ttl.
func NewUnifiedCache[T any](ttl time.Duration, name string, logger *zap.Logger) *UnifiedCache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnifiedCache[T]{
		items:  gocache.New(ttl, ttl/2),
		ttl:    ttl,
		name:   name,
		logger: logger,
	}
}

func (c *UnifiedCache[T]) Set(key string, value T) {
	c.items.SetDefault(key, value)
	c.sets.Add(1)
	c.logger.Debug("Cache set",
		zap.String("cache", c.name),
		zap.String("key", key),
		zap.Duration("ttl", c.ttl),
	)
}

func (c *UnifiedCache[T]) Get(key string) (T, bool) {
	if v, found := c.items.Get(key); found {
		if value, ok := v.(T); ok {
			c.hits.Add(1)
			return value, true
		}
	}
	c.misses.Add(1)
	c.logger.Debug("Cache miss",
		zap.String("cache", c.name),
		zap.String("key", key),
	)
	var zero T
	return zero, false
}

// GetOrLoad returns the cached value or calls load once for all concurrent
// callers of the same key. Failed loads are not cached.
func (c *UnifiedCache[T]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *UnifiedCache[T]) Delete(key string) {
	c.items.Delete(key)
}

func (c *UnifiedCache[T]) Clear() {
	c.items.Flush()
	c.logger.Info("Cache cleared", zap.String("cache", c.name))
}

func (c *UnifiedCache[T]) GetMetrics() CacheMetrics {
	return CacheMetrics{Hits: c.hits.Load(), Misses: c.misses.Load(), Sets: c.sets.Load()}
}

func (c *UnifiedCache[T]) Size() int {
	return c.items.ItemCount()
}
