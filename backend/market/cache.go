package market

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value   any
	expires time.Time
}

// ttlCache is a process-wide response cache shared by all users. Entries
// carry their own TTL; a janitor sweeps expired ones.
type ttlCache struct {
	entries map[string]cacheEntry
	mu      sync.RWMutex
}

func newTTLCache() *ttlCache {
	c := &ttlCache{entries: make(map[string]cacheEntry)}
	go c.janitor()
	return c
}

func (c *ttlCache) janitor() {
	for {
		time.Sleep(10 * time.Minute)
		now := time.Now()
		c.mu.Lock()
		for k, e := range c.entries {
			if now.After(e.expires) {
				delete(c.entries, k)
			}
		}
		c.mu.Unlock()
	}
}

func (c *ttlCache) get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (c *ttlCache) set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
}
