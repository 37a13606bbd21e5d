package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// NoExpiry makes entries live for the whole process lifetime.
const NoExpiry = time.Duration(-1)

// Cache memoizes the results of a lookup function with a fixed TTL and a
// fixed entry cap. Eviction is FIFO on insertion order, not LRU: once the cap
// is exceeded the oldest-inserted entry goes, however hot it still is.
type Cache[T any] struct {
	ttl     time.Duration
	maxSize int

	mu      sync.Mutex
	entries map[string]entry[T]
	order   []string
}

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Create a cache with the given TTL and entry cap.
// Both are fixed at creation, there is no per-call configuration.
func New[T any](ttl time.Duration, maxSize int) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]entry[T]),
	}
}

// Key builds a composite cache key from the call arguments.
// Order-sensitive, so call sites must always pass arguments the same way.
func Key(parts ...any) string {
	strs := make([]string, len(parts))
	for i, part := range parts {
		strs[i] = fmt.Sprint(part)
	}
	return strings.Join(strs, "|")
}

// GetOrCompute returns the cached value for the key when still fresh,
// otherwise invokes fetch and stores its result.
//
// The fetch runs outside the lock: two concurrent misses on the same key will
// both invoke it and the last write wins. The replays are idempotent upstream
// reads, so this costs duplicated work, not correctness.
func (c *Cache[T]) GetOrCompute(key string, fetch func() (T, error)) (T, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if c.ttl == NoExpiry || time.Since(e.storedAt) < c.ttl {
			c.mu.Unlock()
			log.Tracef("cache hit for key %s", key)
			return e.value, nil
		}
	}
	c.mu.Unlock()

	value, err := fetch()
	if err != nil {
		// Transport failures are never cached.
		var zero T
		return zero, err
	}

	c.store(key, value)
	return value, nil
}

// Len returns the current entry count.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Store the value and evict the oldest-inserted entry past the cap.
func (c *Cache[T]) store(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = entry[T]{value: value, storedAt: time.Now()}
	log.Tracef("caching result for key %s", key)

	for len(c.entries) > c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		log.Tracef("cache size %d exceeded, removing oldest entry %s", c.maxSize, oldest)
	}
}
