// Package cache provides a thread-safe LRU cache.
//
// The evaluator uses it as the result store of a dynamic context: results of
// deterministic function calls are kept under their calling-context key so a
// repeated call with equal arguments does not run the function handler again.
// The cache is bounded; an evicted result is simply recomputed on its next
// use.
//
// # Example
//
//	results := cache.New[item.Sequence](4096)
//	v, err, _ := inflight.Do(key, func() (interface{}, error) {
//		return results.GetOrLoad(key, compute)
//	})
package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// entry is a cache entry stored in the doubly-linked list.
type entry[V any] struct {
	key   string
	value V
}

// Cache is a thread-safe LRU (Least Recently Used) cache.
// Once the capacity is reached, the least recently accessed entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache[V any] struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, DefaultCapacity is used.
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[V]{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found and moves the entry to front (MRU).
// Returns (zero, false) if not present.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	el, ok := c.items[key]
	if !ok {
		c.mu.RUnlock()
		return zero, false
	}
	// skip the write lock when the element is already at the front
	if c.ll.Front() == el {
		value := el.Value.(*entry[V]).value
		c.mu.RUnlock()
		return value, true
	}
	c.mu.RUnlock()

	// Promote to front under write lock; re-check in case of concurrent eviction.
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok = c.items[key]
	if !ok {
		return zero, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*entry[V]).value, true
}

// Set inserts or replaces a value in the cache.
// If at capacity, the least recently used entry is evicted first.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[V]).value = value
		c.ll.MoveToFront(el)
		return
	}

	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}

	el := c.ll.PushFront(&entry[V]{key: key, value: value})
	c.items[key] = el
}

// GetOrLoad retrieves the value for key from cache, or calls load()
// to create it, caches the result, and returns it.
// Errors are not cached. Concurrent callers missing the same key may each
// call load; use a singleflight group around GetOrLoad when that matters.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}

// Invalidate removes a single entry from the cache.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

// Clear removes all entries from the cache.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held for writing.
func (c *Cache[V]) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry[V]).key)
}
