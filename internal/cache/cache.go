package cache

import (
	"sync"
	"time"
)

// now is a small indirection to allow test stubbing.
var now = time.Now

type entry[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiration
}

// Cache is a mutex-guarded TTL memo. All entries share the TTL given at
// construction; a TTL of zero or below disables expiry. Expired entries are
// dropped lazily on access.
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[K]entry[V]
}

// New constructs an empty cache with the given shared TTL.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:   ttl,
		items: make(map[K]entry[V]),
	}
}

// Get returns the value and whether it was present and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !e.expiresAt.IsZero() && now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Set stores the value under the cache's shared TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if c.ttl > 0 {
		exp = now().Add(c.ttl)
	}
	c.items[key] = entry[V]{value: value, expiresAt: exp}
}

// Invalidate removes a key if present.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]entry[V])
}

// Len counts the non-expired entries currently stored.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, e := range c.items {
		if e.expiresAt.IsZero() || now().Before(e.expiresAt) {
			count++
		}
	}
	return count
}
