// Package assets loads engine files (shaders, models, textures) from a
// search path of directories and embedded filesystems, with caching.
package assets

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/engine/errs"
	"github.com/Faultbox/nsengine/internal/logger"
)

// Loader reads a file by path. (*Manager).Load satisfies it.
type Loader func(path string) ([]byte, error)

type source struct {
	name string
	fsys fs.FS
}

// Manager resolves asset paths against its sources. Sources are searched
// in reverse order (last added = highest priority).
type Manager struct {
	sources []source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a directory on disk to the search path.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errs.Wrap("assets.AddDir", errs.CodeFileIO, errs.Warning, err)
	}
	if !info.IsDir() {
		return errs.New("assets.AddDir", errs.CodeFileIO, errs.Warning, "%s is not a directory", dir)
	}
	m.Mount(dir, os.DirFS(dir))
	return nil
}

// Mount adds a filesystem, such as an embed.FS, to the search path.
func (m *Manager) Mount(name string, fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, source{name: name, fsys: fsys})
	m.mu.Unlock()
	logger.Debug("asset source mounted", zap.String("source", name))
}

// Load reads an asset. Absolute paths bypass the search path. Results are
// cached until Invalidate or Close.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	data, err := m.read(name)
	if err != nil {
		return nil, err
	}
	m.cache.Set(name, data)
	return data, nil
}

func (m *Manager) read(name string) ([]byte, error) {
	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, errs.Wrap("assets.Load", errs.CodeFileIO, errs.Error, err)
		}
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// fs.FS paths are slash separated and unrooted.
	key := path.Clean(filepath.ToSlash(name))
	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i].fsys, key)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap("assets.Load", errs.CodeFileIO, errs.Error, err)
		}
	}
	return nil, errs.New("assets.Load", errs.CodeFileIO, errs.Error, "file not found: %s", name)
}

// Invalidate drops one cached entry so the next Load rereads it.
func (m *Manager) Invalidate(name string) {
	m.cache.Delete(name)
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all sources and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	// Write lock: the counters change on every lookup.
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
