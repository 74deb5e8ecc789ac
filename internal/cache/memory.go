package cache

import (
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps capability results for the life of the process.
// A zero ttl picks the namespace default: OCR text for a scan never
// changes, so it does not expire, while translations follow defaultTTL.
type MemoryCache struct {
	cache *gocache.Cache

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCache creates a memory cache whose translations expire after
// defaultTTL.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		if b, ok := val.([]byte); ok {
			c.hits.Add(1)
			return b, true
		}
	}
	c.misses.Add(1)
	return nil, false
}

func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 && namespaceOf(key) == NamespaceOCR {
		ttl = gocache.NoExpiration
	}
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Stats returns lookup counts since creation.
func (c *MemoryCache) Stats() Stats {
	return Stats{MemoryHits: c.hits.Load(), Misses: c.misses.Load()}
}

// Entries counts live entries per namespace.
func (c *MemoryCache) Entries() map[string]int {
	out := map[string]int{}
	for key := range c.cache.Items() {
		out[namespaceOf(key)]++
	}
	return out
}

// namespaceOf extracts the namespace from a key built by CacheKey.
// Keys from elsewhere have no namespace.
func namespaceOf(key string) string {
	parts := strings.SplitN(key, ":", 4)
	if len(parts) != 4 || parts[0] != keyPrefix || parts[1] != keyVersion {
		return ""
	}
	return parts[2]
}
