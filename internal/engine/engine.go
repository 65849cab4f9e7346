// Package engine implements C6: the public facade coordinating the
// language registry, parser cache, compactor, semantic index, and search
// engine, owning the single per-path locking discipline spec §5 requires.
package engine

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/lumenforge/codeintel/internal/cache"
	"github.com/lumenforge/codeintel/internal/compactor"
	coreerrors "github.com/lumenforge/codeintel/internal/errors"
	"github.com/lumenforge/codeintel/internal/language"
	"github.com/lumenforge/codeintel/internal/search"
	"github.com/lumenforge/codeintel/internal/semantic"
	"github.com/lumenforge/codeintel/internal/types"
)

// Engine is the process-resident code-intelligence core.
type Engine struct {
	registry  *language.Registry
	cache     *cache.ParserCache
	compactor *compactor.Compactor
	index     *semantic.Index
	fullText  *search.FullTextLayer
	search    *search.Engine

	pathMu sync.Map // path -> *sync.Mutex, serializes parse_file per path

	knownMu sync.Mutex
	known   []string // paths ever parsed, feeds the structural search layer

	searchDefaultTimeout time.Duration
	searchDefaultLimit   int
	searchCombinedMode   bool
}

// Config configures the engine's tunables.
type Config struct {
	CacheBudgetBytes   int64
	RipgrepBinary      string
	RipgrepConcurrency int64

	// DisabledLanguages lists language names (e.g. "Haskell") Detect should
	// refuse regardless of the closed extension table.
	DisabledLanguages []string

	// SearchDefaultTimeout/SearchDefaultLimit/SearchCombinedMode fill in a
	// query's zero-valued Timeout/Limit/Mode before it reaches the search
	// engine, so callers (CLI, MCP tools) don't have to repeat the
	// operator's configured defaults on every call.
	SearchDefaultTimeout time.Duration
	SearchDefaultLimit   int
	SearchCombinedMode   bool
}

// New assembles an Engine from freshly constructed C1-C5 components.
func New(cfg Config) *Engine {
	reg := language.NewRegistryWithDisabled(cfg.DisabledLanguages)
	c2 := cache.New(cache.Config{BudgetBytes: cfg.CacheBudgetBytes})
	idx := semantic.New()
	ft := search.NewFullTextLayer()

	e := &Engine{
		registry:             reg,
		cache:                c2,
		compactor:            compactor.New(),
		index:                idx,
		fullText:             ft,
		searchDefaultTimeout: cfg.SearchDefaultTimeout,
		searchDefaultLimit:   cfg.SearchDefaultLimit,
		searchCombinedMode:   cfg.SearchCombinedMode,
	}

	binary := cfg.RipgrepBinary
	if binary == "" {
		binary = "rg"
	}
	e.search = search.NewEngine(
		search.NewSymbolIndexLayer(idx),
		ft,
		search.NewAstCacheLayer(c2, e.knownPaths),
		search.NewRipgrepLayer(binary, cfg.RipgrepConcurrency),
	)

	return e
}

func (e *Engine) knownPaths() []string {
	e.knownMu.Lock()
	defer e.knownMu.Unlock()
	return append([]string(nil), e.known...)
}

func (e *Engine) recordKnown(path string) {
	e.knownMu.Lock()
	defer e.knownMu.Unlock()
	for _, p := range e.known {
		if p == path {
			return
		}
	}
	e.known = append(e.known, path)
}

func (e *Engine) lockFor(path string) *sync.Mutex {
	l, _ := e.pathMu.LoadOrStore(path, &sync.Mutex{})
	return l.(*sync.Mutex)
}

// ParseFile returns path's parse tree, from cache on a hit or via a fresh
// parse-then-insert-then-index on a miss. Calls for the same path serialize;
// calls for different paths proceed independently (spec §5's per-path
// linearizability, cross-path no-ordering guarantee).
func (e *Engine) ParseFile(path string) (*language.ParseTree, error) {
	if tree, ok := e.cache.Get(path); ok {
		return tree, nil
	}

	lock := e.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	// Re-check: another goroutine may have won the race while we waited.
	if tree, ok := e.cache.Get(path); ok {
		return tree, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, coreerrors.IO(path, err)
	}

	tree, err := e.registry.ParseFile(path, source)
	if err != nil {
		return nil, err
	}

	e.cache.Insert(path, tree.Retain())
	e.recordKnown(path)
	e.index.IndexFile(path, tree, xxhash.Sum64(source))
	e.fullText.IndexFile(path, source)

	return tree, nil
}

// CompactCode parses path (if needed) and compacts it at level.
func (e *Engine) CompactCode(path string, level types.CompactionLevel) (types.CompactionResult, error) {
	tree, err := e.ParseFile(path)
	if err != nil {
		return types.CompactionResult{}, err
	}
	defer tree.Release()
	return e.compactor.Compact(tree, level), nil
}

// SearchSymbols delegates to the semantic index's substring search.
func (e *Engine) SearchSymbols(nameSubstring string) []types.Symbol {
	return e.index.Search(nameSubstring)
}

// GetFileSymbols delegates to the semantic index.
func (e *Engine) GetFileSymbols(path string) []types.SymbolID {
	return e.index.GetFileSymbols(path)
}

// GetCallGraph delegates to the semantic index.
func (e *Engine) GetCallGraph(path, functionName string) []types.SymbolID {
	return e.index.GetCallGraph(path, functionName)
}

// Search routes a query across the four search layers. The structural
// (AST cache) layer only sees paths this engine instance has already parsed
// at least once. A query that leaves Limit/Timeout/Mode at their zero value
// picks up the engine's configured search defaults.
func (e *Engine) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, types.SearchStats, error) {
	if q.Limit == 0 {
		q.Limit = e.searchDefaultLimit
	}
	if q.Timeout == 0 {
		q.Timeout = e.searchDefaultTimeout
	}
	if q.Mode == types.RoutingFirstMatch && e.searchCombinedMode {
		q.Mode = types.RoutingCombined
	}
	return e.search.Search(ctx, q)
}

// ClearCache clears C2; clearIndex additionally drops C4's accumulated
// symbol tables, per spec's "clear_cache(): clears C2 and, optionally, C4".
func (e *Engine) ClearCache(clearIndex bool) {
	e.cache.Clear()
	if clearIndex {
		for _, path := range e.knownPaths() {
			e.index.InvalidateFile(path)
		}
	}
}

// CacheStats exposes C2 occupancy for diagnostics/CLI reporting.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// RegistryStats exposes C1 usage for diagnostics/CLI reporting.
func (e *Engine) RegistryStats() language.RegistryStats {
	return e.registry.Stats()
}

// DetectLanguage reports the language path would be parsed as, without
// parsing it.
func (e *Engine) DetectLanguage(path string) (types.Language, error) {
	return e.registry.Detect(path)
}

// invalidatePath drops path's cached parse tree (C2) and semantic symbols
// (C4), so the next ParseFile call for it is a genuine re-parse. Used by the
// filesystem watcher when a file changes on disk underneath a long-running
// process.
func (e *Engine) invalidatePath(path string) {
	e.cache.Invalidate(path)
	e.index.InvalidateFile(path)
	e.fullText.RemoveFile(path)
}

// forgetKnown removes path from the set fed to the structural search layer,
// called when a watched file is removed from disk.
func (e *Engine) forgetKnown(path string) {
	e.knownMu.Lock()
	defer e.knownMu.Unlock()
	for i, p := range e.known {
		if p == path {
			e.known = append(e.known[:i], e.known[i+1:]...)
			return
		}
	}
}
