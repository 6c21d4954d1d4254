// Package cache provides the in-process TTL cache backing the read
// endpoints. Entries expire lazily on read; a periodic sweep reclaims
// entries nobody asks for again.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Stats is a point-in-time snapshot of cache occupancy. Valid and Expired
// partition Total.
type Stats struct {
	Total   int `json:"total_entries"`
	Valid   int `json:"valid_entries"`
	Expired int `json:"expired_entries"`
}

// Cache is a TTL keyed store safe for concurrent use. The zero value is not
// usable; construct with New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   func() time.Time
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		clock:   time.Now,
	}
}

// Get returns the live value stored under key. An entry past its deadline is
// evicted on the spot and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if e.expired(c.clock()) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have replaced
		// the entry since the read.
		if cur, ok := c.entries[key]; ok && cur.expired(c.clock()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under key with the given lifetime, replacing any previous
// entry and resetting its deadline.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.clock().Add(ttl)}
}

// Delete removes key and reports whether an entry was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// CleanupExpired removes every entry past its deadline and returns how many
// were removed.
func (c *Cache) CleanupExpired() int {
	now := c.clock()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Stats reports current occupancy without evicting anything, so expired
// entries still waiting for cleanup are visible in the numbers.
func (c *Cache) Stats() Stats {
	now := c.clock()

	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{Total: len(c.entries)}
	for _, e := range c.entries {
		if e.expired(now) {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}
	return stats
}
