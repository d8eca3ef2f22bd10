package format

import (
	"sync"

	"github.com/ytgrab/ytgrab/internal/model"
)

// Cache memoizes resolved selection menus by reference URL. Lookup is
// O(1); once capacity is exceeded the least-recently-inserted entry is
// evicted. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]model.SelectionEntry
	order    []string // insertion order, oldest first
}

// NewCache creates a cache holding at most capacity entries. Capacity is
// a configuration knob; a non-positive value degenerates to a single slot
// so Put can always evict safely.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string][]model.SelectionEntry, capacity),
	}
}

// Get returns the cached menu for url, if any
func (c *Cache) Get(url string) ([]model.SelectionEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	menu, ok := c.entries[url]
	return menu, ok
}

// Put stores a resolved menu, evicting the oldest insertion when full
func (c *Cache) Put(url string, menu []model.SelectionEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[url]; exists {
		c.entries[url] = menu
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[url] = menu
	c.order = append(c.order, url)
}

// Len returns the number of cached menus
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
