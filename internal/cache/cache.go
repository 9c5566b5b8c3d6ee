package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"mealdrop/internal/logger"
)

// cell caches one query result with a freshness window. Reads inside the
// window return the cached value; reads outside it return the stale value and
// kick off a background refetch (stale-while-revalidate). A version counter
// implements last-write-wins: a refetch that completes after the cell was
// invalidated or patched is discarded rather than clobbering newer state.
type cell[T any] struct {
	fetch func(context.Context) (T, error)
	ttl   time.Duration

	mu        sync.Mutex
	value     T
	valid     bool
	fetchedAt time.Time
	version   uint64
}

func newCell[T any](ttl time.Duration, fetch func(context.Context) (T, error)) *cell[T] {
	return &cell[T]{fetch: fetch, ttl: ttl}
}

func (c *cell[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	if c.valid {
		value := c.value
		if time.Since(c.fetchedAt) <= c.ttl {
			c.mu.Unlock()
			return value, nil
		}
		// Stale: serve what we have, refresh behind the caller's back.
		version := c.version
		c.mu.Unlock()
		go c.refetch(context.WithoutCancel(ctx), version)
		return value, nil
	}
	version := c.version
	c.mu.Unlock()

	value, err := c.fetch(ctx)
	if err != nil {
		return value, err
	}
	c.install(value, version)
	return value, nil
}

func (c *cell[T]) refetch(ctx context.Context, version uint64) {
	value, err := c.fetch(ctx)
	if err != nil {
		logger.L().Debug("background refetch failed", zap.Error(err))
		return
	}
	c.install(value, version)
}

// install commits a fetched value unless the cell moved on while the fetch
// was in flight.
func (c *cell[T]) install(value T, version uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		return
	}
	c.value = value
	c.valid = true
	c.fetchedAt = time.Now()
}

// Invalidate drops the cached value; the next Get fetches synchronously.
func (c *cell[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.version++
}

// Patch applies an optimistic update from a pushed event payload. It only
// touches an already-populated cache; an empty cell stays empty until the
// next fetch.
func (c *cell[T]) Patch(apply func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return
	}
	c.value = apply(c.value)
	c.fetchedAt = time.Now()
	c.version++
}
