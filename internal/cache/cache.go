// Package cache provides the idempotency cache: identical plan requests
// within the TTL window return the previously computed response instead of
// re-running the pipeline.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/installo/bnpl-planner/internal/models"
)

type entry struct {
	resp      *models.PlanResponse
	expiresAt time.Time
}

// Cache is a TTL-bounded in-memory response cache, safe for concurrent
// use. Eviction is driven externally (a cron job in main) so the cache
// itself spawns no goroutines.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: make(map[string]entry)}
}

// Key derives the idempotency key for a request: a SHA-256 digest of its
// canonical JSON encoding. Struct field order is fixed, so encoding the
// same request always yields the same digest.
func Key(req *models.PlanRequest) string {
	b, _ := json.Marshal(req)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, if present and unexpired.
func (c *Cache) Get(key string, now time.Time) (*models.PlanResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || now.After(e.expiresAt) {
		return nil, false
	}
	return e.resp, true
}

// Set stores a response under key.
func (c *Cache) Set(key string, resp *models.PlanResponse, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{resp: resp, expiresAt: now.Add(c.ttl)}
}

// Evict drops every expired entry and reports how many were removed.
func (c *Cache) Evict(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len reports the current number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
