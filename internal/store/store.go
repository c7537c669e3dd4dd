package store

import (
	"errors"
	"sync"
)

var (
	ErrNotFound     = errors.New("store: record not found")
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// Collection is an in-memory keyed container for one entity type.
// A single RWMutex serializes writers. There are no cross-collection
// transactions; callers must not assume multi-collection atomicity.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	key   func(T) string
}

// New creates a Collection whose records are keyed by the given function.
func New[T any](key func(T) string) *Collection[T] {
	return &Collection[T]{
		items: make(map[string]T),
		key:   key,
	}
}

// Insert stores a record under its key, failing with ErrDuplicateKey
// if the key is already present.
func (c *Collection[T]) Insert(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.key(rec)
	if _, exists := c.items[k]; exists {
		return ErrDuplicateKey
	}
	c.items[k] = rec
	c.order = append(c.order, k)
	return nil
}

// Get returns the record under id, or false if absent.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.items[id]
	return rec, ok
}

// Update replaces the record under id wholesale.
func (c *Collection[T]) Update(id string, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; !exists {
		return ErrNotFound
	}
	c.items[id] = rec
	return nil
}

// List returns a snapshot of all records in insertion order.
// Re-listing observes current state, not a cached one.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.items[k])
	}
	return out
}

// Len reports the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
