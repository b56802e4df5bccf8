// Package cache memoizes processing results for identical documents within
// a batch run. Claims are never persisted across runs; the store is
// in-memory only.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for result memoization
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
}

// Key derives a cache key from normalized document text, so two copies of
// the same claim document hit the same entry regardless of file name
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "fnoltriage:v1:" + hex.EncodeToString(hash[:])
}
