// Package cache provides the in-memory key/value side channel used for
// announcement and featured-speaker text.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"conferencecentral/internal/domain"
)

const defaultCleanupInterval = 30 * time.Minute

type memoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache returns a process-wide cache whose entries live until
// explicitly overwritten or deleted.
func NewMemoryCache() domain.Cache {
	return &memoryCache{
		cache: gocache.New(gocache.NoExpiration, defaultCleanupInterval),
	}
}

func (c *memoryCache) Get(key string) (string, bool) {
	value, found := c.cache.Get(key)
	if !found {
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return s, true
}

func (c *memoryCache) Set(key, value string) {
	c.cache.Set(key, value, gocache.NoExpiration)
}

func (c *memoryCache) Delete(key string) {
	c.cache.Delete(key)
}
