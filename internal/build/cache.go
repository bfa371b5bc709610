package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const cacheFile = ".cache.json"

// Entry contains metadata about a single successful build.
type Entry struct {
	ID        string    `json:"id"` // full variant fingerprint
	Metadata  string    `json:"metadata"`
	BuildTime time.Time `json:"build_time"`
}

// Cache maps "version-id" keys to their build entries.
type Cache struct {
	Cache map[string]*Entry `json:"cache"`
}

func cacheKey(version, id string) string {
	return version + "-" + id
}

// Get returns the entry for a variant, if any.
func (c *Cache) Get(version, id string) (*Entry, bool) {
	entry, ok := c.Cache[cacheKey(version, id)]
	return entry, ok
}

// Set records the entry for a variant.
func (c *Cache) Set(version, id string, entry *Entry) {
	if c.Cache == nil {
		c.Cache = make(map[string]*Entry)
	}
	c.Cache[cacheKey(version, id)] = entry
}

// LoadCache reads the workspace cache file. A missing file is an empty cache.
func (w *Workspace) LoadCache() (*Cache, error) {
	data, err := os.ReadFile(filepath.Join(w.buildRoot, cacheFile))
	if os.IsNotExist(err) {
		return &Cache{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

// SaveCache writes the workspace cache file.
func (w *Workspace) SaveCache(cache *Cache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.buildRoot, cacheFile), data, 0o644)
}
