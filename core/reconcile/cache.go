package reconcile

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// itemCache memoizes SideAdapter.Get for the duration of one run.
// Concurrent reads of the same item share a single call.
type itemCache struct {
	sides Sides

	mu    sync.RWMutex
	items map[string]Item
	sf    singleflight.Group
}

func newItemCache(sides Sides) *itemCache {
	return &itemCache{
		sides: sides,
		items: make(map[string]Item),
	}
}

func cacheKey(side Side, id string) string {
	return side.String() + "|" + id
}

// Get returns the item from the cache, or fetches it from the side adapter.
// Errors are wrapped in an OpError and never cached.
func (c *itemCache) Get(ctx context.Context, side Side, id string) (Item, error) {
	key := cacheKey(side, id)

	// Fast path
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		return item, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		item, ok := c.items[key]
		c.mu.RUnlock()
		if ok {
			return item, nil
		}

		item, err := c.sides.adapter(side).Get(ctx, id)
		if err != nil {
			return nil, &OpError{Op: OpGet, Side: side, ID: id, Err: err}
		}

		c.mu.Lock()
		c.items[key] = item
		c.mu.Unlock()
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Put seeds the cache with an item already read.
func (c *itemCache) Put(side Side, id string, item Item) {
	c.mu.Lock()
	c.items[cacheKey(side, id)] = item
	c.mu.Unlock()
}

// Invalidate drops a cached item after a write on its side.
func (c *itemCache) Invalidate(side Side, id string) {
	c.mu.Lock()
	delete(c.items, cacheKey(side, id))
	c.mu.Unlock()
}
