package cache

import (
	"sync"
	"time"
)

// entry is a cached rendered receipt with its render time.
type entry struct {
	pdf      []byte
	rendered time.Time
}

// ReceiptCache provides a thread-safe in-memory cache for rendered
// receipt PDFs, keyed by transaction id. Receipts are immutable once a
// transaction is stored, so the TTL mostly bounds memory, not staleness.
type ReceiptCache struct {
	cache      map[int64]entry
	expiration time.Duration
	mutex      sync.RWMutex
}

// NewReceiptCache creates a receipt cache with a 1 hour expiration.
func NewReceiptCache() *ReceiptCache {
	return &ReceiptCache{
		cache:      make(map[int64]entry),
		expiration: time.Hour,
	}
}

// Get returns the cached PDF for a transaction, or nil when absent or
// expired.
func (c *ReceiptCache) Get(id int64) []byte {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, exists := c.cache[id]
	if !exists || time.Since(e.rendered) > c.expiration {
		return nil
	}
	return e.pdf
}

// Put stores a rendered PDF for a transaction.
func (c *ReceiptCache) Put(id int64, pdf []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[id] = entry{pdf: pdf, rendered: time.Now()}
}

// Invalidate drops the cached PDF for a transaction, e.g. after the
// transaction is deleted.
func (c *ReceiptCache) Invalidate(id int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.cache, id)
}

// Clear drops every cached PDF.
func (c *ReceiptCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[int64]entry)
}

// SetExpiration sets the cache expiration duration.
func (c *ReceiptCache) SetExpiration(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = d
}

// Size returns the number of cached receipts.
func (c *ReceiptCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}
