// Package cache provides the bounded in-process memoization layer for
// detect results described in SPEC_FULL.md's "new components" section: a
// pure CPU-bound optimization with no I/O, invalidated wholesale whenever
// the detector's configuration or language registry mutates.
package cache

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes values of type V keyed by a fingerprint string, hashed
// with xxhash (the same fast hash the teacher's internal/pkg/hash package
// uses for its content-hash cache keys).
type Cache[V any] struct {
	lru *lru.Cache[uint64, V]
}

// New creates a Cache holding at most size entries. size <= 0 disables
// caching: Get always misses and Put is a no-op.
func New[V any](size int) *Cache[V] {
	if size <= 0 {
		return &Cache[V]{}
	}
	l, err := lru.New[uint64, V](size)
	if err != nil {
		// lru.New only errors on size <= 0, already excluded above.
		panic(err)
	}
	return &Cache[V]{lru: l}
}

// Key fingerprints the given fields into a single cache key.
func Key(fields ...string) uint64 {
	h := xxhash.New()
	for _, f := range fields {
		_, _ = h.WriteString(f)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key uint64) (V, bool) {
	if c.lru == nil {
		var zero V
		return zero, false
	}
	return c.lru.Get(key)
}

// Put stores value under key, evicting the least recently used entry if
// the cache is full.
func (c *Cache[V]) Put(key uint64, value V) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, value)
}

// Purge drops every cached entry. Called on any mutator (add_word,
// set_languages, ...) so a stale result can never be returned after the
// registry or configuration changes.
func (c *Cache[V]) Purge() {
	if c.lru == nil {
		return
	}
	c.lru.Purge()
}
