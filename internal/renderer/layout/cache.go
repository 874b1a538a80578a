package layout

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

// CellCache caches rendered cell rows per document line with LRU
// eviction. Entries validate against a content hash, so a reloaded
// document reuses whatever lines survived the reload. All entries
// belong to one render width; a width change clears the cache.
//
// Returned rows are shared; callers copy before mutating.
type CellCache struct {
	mu      sync.RWMutex
	width   int
	entries map[int]*cacheEntry
	maxSize int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	rows       [][]core.Cell
	textHash   uint64
	lastAccess time.Time
}

// NewCellCache creates a cell cache holding at most maxSize lines
// (0 = unlimited, not recommended).
func NewCellCache(maxSize int) *CellCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &CellCache{
		entries: make(map[int]*cacheEntry),
		maxSize: maxSize,
	}
}

// Rows retrieves or renders the wrapped rows for a line. The src line
// is the current content, used both for validation and for rendering
// on a miss.
func (c *CellCache) Rows(line int, src core.Line, width int) [][]core.Cell {
	hash := hashLine(src.Text())

	c.mu.RLock()
	if width == c.width {
		entry, ok := c.entries[line]
		if ok && entry.textHash == hash {
			c.mu.RUnlock()
			// Update access time with write lock and re-verify entry.
			c.mu.Lock()
			if e, ok := c.entries[line]; ok && e.textHash == hash {
				e.lastAccess = time.Now()
				rows := e.rows
				c.mu.Unlock()
				c.hits.Add(1)
				return rows
			}
			c.mu.Unlock()
			// Entry changed between locks, treat as miss.
			return c.renderAndStore(line, src, width, hash)
		}
	}
	c.mu.RUnlock()
	return c.renderAndStore(line, src, width, hash)
}

func (c *CellCache) renderAndStore(line int, src core.Line, width int, hash uint64) [][]core.Cell {
	c.misses.Add(1)
	rows := RenderLine(src, width)

	c.mu.Lock()
	defer c.mu.Unlock()

	if width != c.width {
		c.entries = make(map[int]*cacheEntry)
		c.width = width
	}
	c.entries[line] = &cacheEntry{
		rows:       rows,
		textHash:   hash,
		lastAccess: time.Now(),
	}
	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evict()
	}
	return rows
}

// Invalidate drops one line's entry.
func (c *CellCache) Invalidate(line int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, line)
}

// InvalidateAll clears the cache.
func (c *CellCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]*cacheEntry)
}

// evict removes the least recently used entries until under maxSize.
// Must be called with write lock held.
func (c *CellCache) evict() {
	if c.maxSize <= 0 || len(c.entries) <= c.maxSize {
		return
	}

	type lineTime struct {
		line int
		time time.Time
	}
	entries := make([]lineTime, 0, len(c.entries))
	for line, entry := range c.entries {
		entries = append(entries, lineTime{line, entry.lastAccess})
	}

	// Insertion sort by access time is fine for small N.
	for i := 1; i < len(entries); i++ {
		j := i
		for j > 0 && entries[j].time.Before(entries[j-1].time) {
			entries[j], entries[j-1] = entries[j-1], entries[j]
			j--
		}
	}

	toRemove := len(entries) - c.maxSize
	for i := 0; i < toRemove; i++ {
		delete(c.entries, entries[i].line)
	}
	if toRemove > 0 {
		c.evictions.Add(uint64(toRemove))
	}
}

// Size returns the number of cached lines.
func (c *CellCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *CellCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// ResetStats resets the statistics counters.
func (c *CellCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int
	MaxSize   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// hashLine computes an FNV-1a hash of line content, with the length
// mixed in first to reduce collisions.
func hashLine(s string) uint64 {
	h := fnv.New64a()
	length := uint64(len(s))
	h.Write([]byte{
		byte(length), byte(length >> 8), byte(length >> 16), byte(length >> 24),
		byte(length >> 32), byte(length >> 40), byte(length >> 48), byte(length >> 56),
	})
	h.Write([]byte(s))
	return h.Sum64()
}
