// Package cache implements C2, the parser cache: a strict byte-budget LRU
// keyed by file path, holding the reference-counted ParseTree values the
// language registry produces. Unlike a count-bounded cache, eviction here is
// driven entirely by the cumulative EstimatedSize of resident entries against
// a configured budget.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumenforge/codeintel/internal/language"
)

// entry is the value stored at each list element.
type entry struct {
	path string
	tree *language.ParseTree
	size int64
}

// ParserCache is a strict LRU bounded by total estimated bytes rather than
// entry count. No ecosystem library in the surrounding stack (golang-lru,
// ristretto, etc.) supports byte-budget eviction with this exact "evict
// oldest until current+incoming <= budget" policy, so the ordering structure
// is built directly on container/list; the surrounding stats/config shape
// still follows the teacher's atomic-counter cache.
type ParserCache struct {
	mu       sync.Mutex
	order    *list.List // front = most recently used
	index    map[string]*list.Element
	budget   int64
	current  int64

	hits      int64
	misses    int64
	evictions int64
	inserts   int64

	createdAt time.Time
}

// Config configures a ParserCache.
type Config struct {
	// BudgetBytes is the maximum cumulative EstimatedSize of resident trees.
	BudgetBytes int64
}

// DefaultBudgetBytes matches the teacher's order-of-magnitude default
// working-set size, scaled for whole-tree residency rather than per-metric
// entries.
const DefaultBudgetBytes int64 = 256 * 1024 * 1024

// New constructs a ParserCache with the given byte budget. A non-positive
// budget falls back to DefaultBudgetBytes.
func New(cfg Config) *ParserCache {
	budget := cfg.BudgetBytes
	if budget <= 0 {
		budget = DefaultBudgetBytes
	}
	return &ParserCache{
		order:     list.New(),
		index:     make(map[string]*list.Element),
		budget:    budget,
		createdAt: time.Now(),
	}
}

// Get returns the cached tree for path, retained for the caller, moving it
// to the front of the LRU order. The hit-rate counters update on every call,
// hit or miss, per the cache's own bookkeeping rather than a sampled rate.
func (c *ParserCache) Get(path string) (*language.ParseTree, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[path]
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	c.order.MoveToFront(el)
	atomic.AddInt64(&c.hits, 1)
	e := el.Value.(*entry)
	return e.tree.Retain(), true
}

// Insert stores tree under path, taking ownership of the reference passed
// in (the cache becomes one more owner; call Retain before Insert if the
// caller also wants to keep using it). Any previous entry for path is
// replaced and released. Evicts least-recently-used entries until the
// budget is respected.
func (c *ParserCache) Insert(path string, tree *language.ParseTree) {
	size := tree.EstimatedSize()

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.index[path]; ok {
		old := existing.Value.(*entry)
		c.current -= old.size
		old.tree.Release()
		c.order.Remove(existing)
		delete(c.index, path)
	}

	el := c.order.PushFront(&entry{path: path, tree: tree, size: size})
	c.index[path] = el
	c.current += size
	atomic.AddInt64(&c.inserts, 1)

	for c.current > c.budget {
		back := c.order.Back()
		if back == nil {
			break
		}
		victim := back.Value.(*entry)
		if victim.path == path {
			// Budget smaller than a single entry: keep it resident anyway
			// rather than evicting the entry we just inserted.
			break
		}
		c.order.Remove(back)
		delete(c.index, victim.path)
		c.current -= victim.size
		victim.tree.Release()
		atomic.AddInt64(&c.evictions, 1)
	}
}

// Invalidate removes and releases the entry for path, if present. Reports
// whether an entry was found.
func (c *ParserCache) Invalidate(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[path]
	if !ok {
		return false
	}
	e := el.Value.(*entry)
	c.order.Remove(el)
	delete(c.index, path)
	c.current -= e.size
	e.tree.Release()
	return true
}

// Contains reports presence without affecting LRU order or hit/miss stats.
func (c *ParserCache) Contains(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[path]
	return ok
}

// Clear releases every resident tree and resets occupancy to zero. Hit/miss
// counters are left intact since they describe lifetime cache behavior, not
// current residency.
func (c *ParserCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.order.Front(); el != nil; el = el.Next() {
		el.Value.(*entry).tree.Release()
	}
	c.order.Init()
	c.index = make(map[string]*list.Element)
	c.current = 0
}

// Stats is a point-in-time snapshot of cache occupancy and hit behavior.
type Stats struct {
	Entries       int
	CurrentBytes  int64
	BudgetBytes   int64
	Hits          int64
	Misses        int64
	Evictions     int64
	Inserts       int64
	HitRate       float64
	Uptime        time.Duration
}

// Stats reports current occupancy and lifetime counters.
func (c *ParserCache) Stats() Stats {
	c.mu.Lock()
	entries := len(c.index)
	current := c.current
	budget := c.budget
	c.mu.Unlock()

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	total := hits + misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Entries:      entries,
		CurrentBytes: current,
		BudgetBytes:  budget,
		Hits:         hits,
		Misses:       misses,
		Evictions:    atomic.LoadInt64(&c.evictions),
		Inserts:      atomic.LoadInt64(&c.inserts),
		HitRate:      hitRate,
		Uptime:       time.Since(c.createdAt),
	}
}
