// Package assets supplies the loaded scene graphs items are drawn from.
//
// Scenes are produced by builders registered per model path and cached
// after the first load. The stock builders assemble placeholder models from
// primitives so the viewer runs without any asset files.
package assets

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/worlddrops/internal/drops"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/internal/items"
	"github.com/Faultbox/worlddrops/internal/logger"
)

// ErrNotFound is returned by Load for a path with no builder.
var ErrNotFound = errors.New("assets: no builder for path")

// Builder produces a fresh scene for one model.
type Builder func() *scenegraph.Node

// Paths of the ambient marker models, which have no pose entry.
const (
	PaperPath = "models/props/paper.glb"
)

// categoryTypes names the item type whose model stands for each category.
var categoryTypes = map[drops.Category]string{
	drops.ScanTool:        "tool_scanner",
	drops.HazardShard:     "red_shard",
	drops.PistolPrimary:   "weapon_makarov",
	drops.PistolSecondary: "weapon_tt",
	drops.PillBottle:      "pill_bottle",
	drops.HealthSolution:  "health_solution",
}

// Manager handles scene loading from registered builders.
type Manager struct {
	builders map[string]Builder
	registry *items.Registry
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a manager with the placeholder builders registered.
func NewManager() *Manager {
	m := &Manager{
		builders: make(map[string]Builder),
		registry: items.Default(),
		cache:    NewCache(),
	}
	for path, b := range placeholders {
		m.Register(path, b)
	}
	return m
}

// Register installs or replaces the builder for path and drops any cached
// scene for it.
func (m *Manager) Register(path string, b Builder) {
	m.mu.Lock()
	m.builders[path] = b
	m.mu.Unlock()
	m.cache.Delete(path)
}

// Load returns the scene for path, building it on first use.
// Callers share the returned scene and must not modify it.
func (m *Manager) Load(path string) (*scenegraph.Node, error) {
	if scene, ok := m.cache.Get(path); ok {
		return scene, nil
	}

	m.mu.RLock()
	b, ok := m.builders[path]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	scene := b()
	m.cache.Set(path, scene)
	return scene, nil
}

// ModelPath returns the model path of an item type.
func (m *Manager) ModelPath(typeID string) string {
	return m.registry.Lookup(typeID).ModelPath
}

// DropAssets loads everything the drop dispatcher draws from. Models that
// fail to load are left out; the dispatcher skips their categories.
func (m *Manager) DropAssets() drops.Assets {
	out := drops.Assets{Models: make(map[drops.Category]*scenegraph.Node, len(categoryTypes))}
	for c, typeID := range categoryTypes {
		if scene := m.tryLoad(m.ModelPath(typeID)); scene != nil {
			out.Models[c] = scene
		}
	}
	out.Paper = m.tryLoad(PaperPath)
	out.Stick = m.tryLoad(m.ModelPath("weapon_stick"))
	return out
}

func (m *Manager) tryLoad(path string) *scenegraph.Node {
	scene, err := m.Load(path)
	if err != nil {
		logger.Warn("model unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return scene
}

// Cache is a simple in-memory cache for loaded scenes.
type Cache struct {
	data map[string]*scenegraph.Node
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*scenegraph.Node),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*scenegraph.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scene, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return scene, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, scene *scenegraph.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = scene
}

// Delete removes one item.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*scenegraph.Node)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
