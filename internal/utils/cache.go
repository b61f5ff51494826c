package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps cached data with its expiry.
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// PageCache is a small TTL cache on top of an LRU, used for rendered page
// data that is expensive to rebuild on every hit (the topic index).
type PageCache struct {
	lruCache *lru.Cache[string, CacheItem]
}

func NewPageCache(size int) (*PageCache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, err
	}
	return &PageCache{lruCache: l}, nil
}

func (c *PageCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns nil when the key is absent or expired.
func (c *PageCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}
	return val.Data
}

func (c *PageCache) Delete(key string) {
	c.lruCache.Remove(key)
}
