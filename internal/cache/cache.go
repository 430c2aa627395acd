// Package cache stores serialized extraction results so re-running a batch
// does not re-spend LLM calls on unchanged documents.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-value store with per-entry TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey derives the cache key for one extraction: a hash over the
// document text and the model that produced the result. Changing either
// invalidates the entry; the filename deliberately does not participate, so
// renamed copies of the same document still hit.
func ResultKey(text, model string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "doctag:v1:" + hex.EncodeToString(h.Sum(nil))
}
