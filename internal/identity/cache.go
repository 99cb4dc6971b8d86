package identity

import (
	"container/list"
	"sync"
)

const nameCacheSize = 4096

type cacheKey struct {
	group bool
	id    uint32
}

type cacheEntry struct {
	key  cacheKey
	name string
	err  error
}

// nameCache is a small LRU of id lookups. Failures are cached too, so an
// unknown uid costs one lookup per run.
type nameCache struct {
	mu    sync.Mutex
	max   int
	ll    *list.List
	items map[cacheKey]*list.Element
}

func newNameCache(max int) *nameCache {
	return &nameCache{
		max:   max,
		ll:    list.New(),
		items: make(map[cacheKey]*list.Element),
	}
}

func (c *nameCache) Get(key cacheKey) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(cacheEntry), true
	}
	return cacheEntry{}, false
}

func (c *nameCache) Set(key cacheKey, name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value = cacheEntry{key: key, name: name, err: err}
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(cacheEntry{key: key, name: name, err: err})
	c.items[key] = el

	if c.ll.Len() > c.max {
		last := c.ll.Back()
		if last == nil {
			return
		}
		c.ll.Remove(last)
		delete(c.items, last.Value.(cacheEntry).key)
	}
}

func (c *nameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
