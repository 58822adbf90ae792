package site

import (
	"io/fs"
	"sync"
	"time"

	"github.com/safemama/site/content"
)

// ContentCache holds the parsed page library and reloads it from its source
// once the TTL has passed, so edits to an on-disk content directory show up
// without a restart.
type ContentCache struct {
	mu      sync.RWMutex
	lib     *content.Library
	fetched time.Time
	ttl     time.Duration
	load    func() (*content.Library, error)
}

// NewContentCache creates a ContentCache that parses pages from fsys.
func NewContentCache(fsys fs.FS, ttl time.Duration) *ContentCache {
	return &ContentCache{ttl: ttl, load: func() (*content.Library, error) { return content.Load(fsys) }}
}

func (c *ContentCache) valid() bool {
	return c.lib != nil && (c.ttl < 0 || time.Since(c.fetched) < c.ttl)
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.lib = nil
	c.mu.Unlock()
}

// Library returns the cached library after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
// A failed reload keeps serving the previous library.
func (c *ContentCache) Library() (*content.Library, error) {
	c.mu.RLock()
	if c.valid() {
		lib := c.lib
		c.mu.RUnlock()
		return lib, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.lib, nil
	}
	lib, err := c.load()
	if err != nil {
		if c.lib != nil {
			c.fetched = time.Now()
			return c.lib, nil
		}
		return nil, err
	}
	c.lib = lib
	c.fetched = time.Now()
	return lib, nil
}
