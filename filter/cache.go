package filter

import (
	"container/list"
	"sync"
)

// programCache keeps the most recently compiled filters, keyed by expression
type programCache struct {
	size    int
	order   *list.List
	entries map[string]*list.Element
	mu      sync.Mutex
}

type cacheEntry struct {
	expression string
	filter     *ExprFilter
}

func newProgramCache(size int) *programCache {
	return &programCache{
		size:    size,
		order:   list.New(),
		entries: make(map[string]*list.Element, size),
	}
}

func (c *programCache) get(expression string) (*ExprFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(node)
	return node.Value.(*cacheEntry).filter, true
}

func (c *programCache) put(expression string, filter *ExprFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[expression]; ok {
		c.order.MoveToFront(node)
		node.Value.(*cacheEntry).filter = filter
		return
	}

	c.entries[expression] = c.order.PushFront(&cacheEntry{expression: expression, filter: filter})

	if c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).expression)
	}
}

func (c *programCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
