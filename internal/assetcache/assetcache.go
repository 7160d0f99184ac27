package assetcache

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a read-through cache of decoded images keyed by file path.
// Concurrent requests for the same path decode once; every caller shares the
// resulting image, which is treated as immutable.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
	group  singleflight.Group
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Get returns the decoded image for path, loading it on first use. Decode
// failures are not cached, so a corrected file succeeds on retry.
func (c *Cache) Get(path string) (image.Image, error) {
	c.mu.RLock()
	cached, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := c.group.Do(path, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.images[path]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		decoded, err := decodeFile(path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.images[path] = decoded
		c.mu.Unlock()
		return decoded, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(image.Image), nil
}

// Len reports the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset %s: %w", path, err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", path, err)
	}
	return decoded, nil
}
