package chart

import (
	"sync"
	"time"
)

// maxCacheEntries caps how many rendered charts are held at once
const maxCacheEntries = 256

type cacheEntry struct {
	createdAt time.Time
	image     []byte
}

// cache is a TTL cache of rendered PNGs keyed by caller-supplied strings
type cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *cache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.createdAt.Add(c.ttl)) {
		delete(c.entries, key)
		return nil, false
	}
	img := make([]byte, len(entry.image))
	copy(img, entry.image)
	return img, true
}

// set stores img, dropping expired entries and, when still full, the oldest one
func (c *cache) set(key string, img []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if !now.Before(entry.createdAt.Add(c.ttl)) {
			delete(c.entries, k)
		}
	}

	if _, exists := c.entries[key]; !exists && len(c.entries) >= maxCacheEntries {
		c.evictOldest()
	}

	c.entries[key] = cacheEntry{createdAt: now, image: img}
}

func (c *cache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, entry := range c.entries {
		if !found || entry.createdAt.Before(oldest) {
			oldestKey, oldest, found = k, entry.createdAt, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}
