// Package cache provides a read-through cache for backend collections.
//
// Each cached collection is keyed by its logical identity (all appointments,
// all patients, ...). After any successful mutation of a collection the
// caller invalidates it, so the next read reflects the mutation. Nothing
// here coordinates concurrently racing mutations; last write wins, matching
// the backend's REST semantics.
package cache

import (
	"context"
	"sync"
)

// Fetch loads a collection from its source of truth.
type Fetch[T any] func(ctx context.Context) (T, error)

// Collection is a single cached collection value.
type Collection[T any] struct {
	mu    sync.Mutex
	value T
	valid bool
}

// NewCollection creates an empty, invalid collection cache.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

// Get returns the cached value, fetching it first when the cache is invalid.
// A fetch failure leaves the cache invalid and is returned to the caller.
func (c *Collection[T]) Get(ctx context.Context, fetch Fetch[T]) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return c.value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.value = value
	c.valid = true
	return value, nil
}

// Invalidate discards the cached value. The next Get refetches.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.valid = false
}

// Valid reports whether a cached value is present.
func (c *Collection[T]) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid
}
