package release

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

type cacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

// Cache memoizes Load by path and file modification time, so an edited file
// is read again. Callers must not modify the returned slice.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	loader  func(string) ([]Release, error)
}

type cacheEntry struct {
	key      cacheKey
	releases []Release
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry), loader: Load}
}

// Load returns the releases in path, reading the file only when it changed
// since the last call. The second result reports a cache hit.
func (c *Cache) Load(path string) ([]Release, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, false, &DataFormatError{Path: path, Err: err}
	}
	key := cacheKey{path: abs, modTime: info.ModTime(), size: info.Size()}

	c.mu.Lock()
	entry, ok := c.entries[abs]
	c.mu.Unlock()
	if ok && entry.key == key {
		return entry.releases, true, nil
	}

	// Two concurrent first loads may both read the file; the results are
	// identical, so the last one to finish wins.
	releases, err := c.loader(path)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.entries[abs] = cacheEntry{key: key, releases: releases}
	c.mu.Unlock()
	return releases, false, nil
}
