package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/landwatch/internal/model"
	"github.com/ppiankov/landwatch/internal/util"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Stats counts lookups by the layer that answered them.
type Stats struct {
	MemoryHits int64
	DiskHits   int64
	Misses     int64
}

// Lookups reports how many lookups hit.
func (s Stats) Lookups() int64 {
	return s.MemoryHits + s.DiskHits + s.Misses
}

// Reporter is implemented by caches that count their lookups.
type Reporter interface {
	Stats() Stats
}

const (
	keyPrefix  = "landwatch"
	keyVersion = "v1"
)

// Namespaces for capability results
const (
	NamespaceOCR       = "ocr"
	NamespaceTranslate = "translate"
)

// CacheKey generates a cache key from the input of a capability call
func CacheKey(namespace string, input []byte) string {
	hash := sha256.Sum256(input)
	return keyPrefix + ":" + keyVersion + ":" + namespace + ":" + hex.EncodeToString(hash[:])
}

// FromConfig builds the cache described by cfg. Returns nil when caching
// is disabled; an empty dir keeps everything in memory.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, util.ExpandHome(cfg.Dir), cfg.DiskTTL)
}
