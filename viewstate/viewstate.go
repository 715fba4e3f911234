// Package viewstate implements the synchronization contract every list
// screen of the console shares: one fetch per activation, wholesale replace
// on success, error-instead-of-data on failure, and reconcile-on-confirm for
// create, update and delete. A Collection never changes before the platform
// has confirmed the mutation, so there is nothing to roll back.
package viewstate

import (
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Collection is the in-memory state of one list view, keyed by the
// server-assigned identifier. Safe for concurrent use.
type Collection[T any] struct {
	mu     sync.RWMutex
	keyOf  func(T) string
	items  []T
	errMsg string
	loaded bool
}

func NewCollection[T any](keyOf func(T) string) *Collection[T] {
	return &Collection[T]{keyOf: keyOf}
}

// Replace installs a fresh fetch result. The previous contents are discarded
// wholesale and any stored error is cleared; server order is preserved.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]T, len(items))
	copy(c.items, items)
	c.errMsg = ""
	c.loaded = true
}

// Fail records a fetch failure. The collection is emptied so stale data and
// an error are never shown together.
func (c *Collection[T]) Fail(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.errMsg = message
	c.loaded = true
}

// Append adds a record the platform confirmed it created.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, item)
}

// Update replaces the record with the same key in place. It reports whether
// a record was found; an unknown key leaves the collection untouched.
func (c *Collection[T]) Update(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.keyOf(item)
	for i := range c.items {
		if c.keyOf(c.items[i]) == key {
			c.items[i] = item
			return true
		}
	}
	return false
}

// Remove drops the record with the given key. Call it only after the
// platform confirmed the deletion.
func (c *Collection[T]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.keyOf(c.items[i]) == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get looks a record up by key.
func (c *Collection[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.items {
		if c.keyOf(c.items[i]) == key {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Items returns a copy of the current contents in server order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Err returns the stored fetch error, empty when the last fetch succeeded.
func (c *Collection[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// Loaded reports whether any fetch has resolved yet.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Len returns the number of held records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Filter narrows the displayed subset with a case-insensitive substring
// match over the searchable fields, without re-fetching. An empty term
// returns everything.
func (c *Collection[T]) Filter(term string, fields func(T) []string) []T {
	items := c.Items()
	if term == "" {
		return items
	}

	needle := strings.ToLower(term)
	return lo.Filter(items, func(item T, _ int) bool {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	})
}
