package classify

import (
	"sync"
	"time"
)

// ttlCache is a content-keyed expiring store. Entries are independent;
// there are no cross-key invariants, so a plain RWMutex around single-key
// get/set is all the locking needed.
type ttlCache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]ttlEntry[V]
}

type ttlEntry[V any] struct {
	value   V
	expires time.Time
}

func newTTLCache[V any](ttl time.Duration) *ttlCache[V] {
	return &ttlCache[V]{ttl: ttl, entries: make(map[string]ttlEntry[V])}
}

func (c *ttlCache[V]) get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// purgeThreshold bounds map growth: expired entries are swept on the
// write that pushes the map past this size.
const purgeThreshold = 4096

func (c *ttlCache[V]) set(key string, v V) {
	c.mu.Lock()
	if len(c.entries) >= purgeThreshold {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expires) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = ttlEntry[V]{value: v, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *ttlCache[V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
