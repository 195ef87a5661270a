package dataset

import (
	"container/list"
	"sync"
)

// LRUCache is a thread-safe LRU cache of decoded records keyed by dataset
// fingerprint.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	cache    map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	fingerprint string
	records     []any
}

// NewLRUCache creates a cache holding at most capacity record sets. A
// capacity below one is treated as one.
func NewLRUCache(capacity int) *LRUCache {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached records for fingerprint. The slice is shared and
// must not be modified.
func (c *LRUCache) Get(fingerprint string) ([]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.cache[fingerprint]
	if !exists {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).records, true
}

// Put stores records, evicting the least recently used entry if full.
func (c *LRUCache) Put(fingerprint string, records []any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.cache[fingerprint]; exists {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).records = records
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.cache, oldest.Value.(*cacheEntry).fingerprint)
			c.order.Remove(oldest)
		}
	}

	c.cache[fingerprint] = c.order.PushFront(&cacheEntry{fingerprint: fingerprint, records: records})
}

// Invalidate removes the entry for fingerprint.
func (c *LRUCache) Invalidate(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.cache[fingerprint]
	if !exists {
		return
	}
	delete(c.cache, fingerprint)
	c.order.Remove(elem)
}

func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
