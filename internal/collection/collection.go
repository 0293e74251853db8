// Package collection provides the cursor-paged controller used for the
// photo list, the album list, and an open album's member photos.
package collection

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Loader fetches one page of items starting at cursor. An empty returned
// cursor means the collection is exhausted.
type Loader[T any] func(ctx context.Context, cursor string, limit int) (items []T, next string, err error)

// Controller holds the loaded prefix of one paginated collection in server
// order. At most one load is in flight at a time; a LoadMore observed while
// loading is dropped, and a LoadFirst supersedes any load still in flight.
type Controller[T any] struct {
	loader Loader[T]
	keyFn  func(T) string

	mu        sync.Mutex
	items     []T
	cursor    string
	pageSize  int
	inflight  int
	exhausted bool
	gen       int
}

// New creates a Controller. keyFn extracts the identity used for defensive
// de-duplication across pages.
func New[T any](loader Loader[T], keyFn func(T) string) *Controller[T] {
	return &Controller[T]{loader: loader, keyFn: keyFn}
}

// LoadFirst replaces the collection with the first page. If another
// LoadFirst starts before this one resolves, the slower response is
// discarded rather than applied out of order.
func (c *Controller[T]) LoadFirst(ctx context.Context, pageSize int) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.pageSize = pageSize
	c.inflight++
	c.mu.Unlock()

	items, next, err := c.loader(ctx, "", pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if gen != c.gen {
		// Superseded by a later LoadFirst; drop this result entirely.
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "load first page")
	}
	c.items = dedupe(items, c.keyFn)
	c.cursor = next
	c.exhausted = next == ""
	return nil
}

// LoadMore appends the next page. It is a no-op while a load is in flight or
// when no continuation cursor is present.
func (c *Controller[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.inflight > 0 || c.exhausted || c.cursor == "" {
		c.mu.Unlock()
		return nil
	}
	gen := c.gen
	cursor := c.cursor
	limit := c.pageSize
	c.inflight++
	c.mu.Unlock()

	items, next, err := c.loader(ctx, cursor, limit)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if gen != c.gen {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "load next page")
	}
	c.appendLocked(items)
	c.cursor = next
	c.exhausted = next == ""
	return nil
}

// Seed replaces the collection with items already fetched elsewhere (an
// album detail response carries its first photo page inline).
func (c *Controller[T]) Seed(items []T, cursor string, pageSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items = dedupe(items, c.keyFn)
	c.cursor = cursor
	c.pageSize = pageSize
	c.exhausted = cursor == ""
}

// Reset clears the collection and invalidates any load still in flight.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items = nil
	c.cursor = ""
	c.exhausted = false
}

// Items returns a copy of the loaded prefix.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of loaded items.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Cursor returns the continuation cursor, empty when exhausted or unloaded.
func (c *Controller[T]) Cursor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Loading reports whether a load is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Exhausted reports whether the collection has no further pages.
func (c *Controller[T]) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// Get returns the loaded item with the given key.
func (c *Controller[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if c.keyFn(it) == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Prepend inserts the item at the head. If an item with the same key is
// already loaded it is replaced in place instead.
func (c *Controller[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.keyFn(item)
	for i, it := range c.items {
		if c.keyFn(it) == key {
			c.items[i] = item
			return
		}
	}
	c.items = append([]T{item}, c.items...)
}

// PrependAll inserts items at the head preserving their given order,
// skipping keys already loaded.
func (c *Controller[T]) PrependAll(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[string]struct{}, len(c.items))
	for _, it := range c.items {
		seen[c.keyFn(it)] = struct{}{}
	}
	head := make([]T, 0, len(items))
	for _, it := range items {
		if _, dup := seen[c.keyFn(it)]; dup {
			continue
		}
		seen[c.keyFn(it)] = struct{}{}
		head = append(head, it)
	}
	c.items = append(head, c.items...)
}

// RemoveByKey removes the item with the given key, returning it along with
// its index so a failed optimistic delete can restore it.
func (c *Controller[T]) RemoveByKey(key string) (T, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if c.keyFn(it) == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return it, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// InsertAt restores an item at index, clamping to the current bounds.
func (c *Controller[T]) InsertAt(index int, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index > len(c.items) {
		index = len(c.items)
	}
	c.items = append(c.items[:index], append([]T{item}, c.items[index:]...)...)
}

// Replace swaps the loaded item with the same key for the given item.
func (c *Controller[T]) Replace(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.keyFn(item)
	for i, it := range c.items {
		if c.keyFn(it) == key {
			c.items[i] = item
			return true
		}
	}
	return false
}

func (c *Controller[T]) appendLocked(items []T) {
	seen := make(map[string]struct{}, len(c.items))
	for _, it := range c.items {
		seen[c.keyFn(it)] = struct{}{}
	}
	for _, it := range items {
		key := c.keyFn(it)
		if _, dup := seen[key]; dup {
			// A concurrent server-side write shifted the cursor window;
			// keep the copy already loaded.
			continue
		}
		seen[key] = struct{}{}
		c.items = append(c.items, it)
	}
}

func dedupe[T any](items []T, keyFn func(T) string) []T {
	out := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		key := keyFn(it)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
