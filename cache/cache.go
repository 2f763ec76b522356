// Package cache is the read-through cache layer for single-order reads and
// the aggregate item listing. The backend is best-effort: when it is absent
// every read is a miss and every invalidation is a no-op, and the request
// proceeds against the database.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ItemListKey holds the full item listing under a single aggregate key.
// Any write to the menu hierarchy invalidates it wholesale.
const ItemListKey = "items:list"

var (
	// OrderTTL bounds how long a cached order may be served without a
	// write-triggered invalidation.
	OrderTTL = 60 * time.Second

	// ItemListTTL bounds staleness of the item listing.
	ItemListTTL = 300 * time.Second
)

// OrderKey returns the cache key for a single order.
func OrderKey(id uint) string {
	return fmt.Sprintf("order:%d", id)
}

// Store is the cache port: get/set/delete with a per-entry TTL. It is
// injected once at startup; every operation is best-effort and must never
// fail the surrounding request.
type Store interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
}

// Memory is an in-process Store backed by go-cache.
type Memory struct {
	c *gocache.Cache
}

func NewMemory() *Memory {
	return &Memory{c: gocache.New(gocache.NoExpiration, time.Minute)}
}

func (m *Memory) Get(key string) (interface{}, bool) {
	return m.c.Get(key)
}

func (m *Memory) Set(key string, value interface{}, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *Memory) Delete(key string) {
	m.c.Delete(key)
}

// Noop is the degraded Store used when no cache backend is available.
// Every read misses, every write and invalidation is dropped.
type Noop struct{}

func (Noop) Get(string) (interface{}, bool)         { return nil, false }
func (Noop) Set(string, interface{}, time.Duration) {}
func (Noop) Delete(string)                          {}
