package utils

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value      V
	expiration time.Time
}

// KeyedCache is a small in-process cache with per-entry expiration and
// group-based invalidation. Entries sharing a group are dropped together;
// valuation results are grouped by product so a NAV or weight write can
// invalidate every cached date for the affected products at once.
type KeyedCache[V any] struct {
	entries map[string]cacheEntry[V]
	groups  map[int64][]string
	mutex   sync.RWMutex
}

func NewKeyedCache[V any]() *KeyedCache[V] {
	return &KeyedCache[V]{
		entries: map[string]cacheEntry[V]{},
		groups:  map[int64][]string{},
	}
}

// Set stores a value under key, attached to group, expiring after duration.
// A non-positive duration disables caching for the call.
func (c *KeyedCache[V]) Set(group int64, key string, value V, duration time.Duration) {
	if duration <= 0 {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[V]{value: value, expiration: time.Now().Add(duration)}
	c.groups[group] = append(c.groups[group], key)
}

// Get retrieves the cached value for key if it has not expired.
func (c *KeyedCache[V]) Get(key string) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiration) {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// InvalidateGroup removes every entry attached to the given group.
func (c *KeyedCache[V]) InvalidateGroup(group int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, key := range c.groups[group] {
		delete(c.entries, key)
	}
	delete(c.groups, group)
}

// Clear removes all cached values.
func (c *KeyedCache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = map[string]cacheEntry[V]{}
	c.groups = map[int64][]string{}
}
