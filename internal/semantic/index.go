// Package semantic implements C4: per-file symbol extraction and cross-file
// querying over a single shared RW-locked index, following spec §5's note
// that "a single RW lock is simpler and sufficient at the scale targeted
// here."
package semantic

import (
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lumenforge/codeintel/internal/language"
	"github.com/lumenforge/codeintel/internal/types"
)

// Index is the C4 semantic index: four logically disjoint maps guarded by
// one RW lock, satisfying I3 (location/file_symbols agreement), I4 (no
// dangling call-graph edges), and I5 (stable IDs, atomic per-file replace).
type Index struct {
	mu sync.RWMutex

	symbols      map[types.SymbolID]types.Symbol
	fileSymbols  map[string][]types.SymbolID
	callGraph    map[types.SymbolID][]types.SymbolID
	inheritance  map[types.SymbolID][]types.SymbolID
	imports      map[string][]string
	contentHash  map[string]uint64 // last-indexed content hash per path, for the I5 no-op re-index check
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		symbols:     make(map[types.SymbolID]types.Symbol),
		fileSymbols: make(map[string][]types.SymbolID),
		callGraph:   make(map[types.SymbolID][]types.SymbolID),
		inheritance: make(map[types.SymbolID][]types.SymbolID),
		imports:     make(map[string][]string),
		contentHash: make(map[string]uint64),
	}
}

// IndexFile atomically replaces every entry belonging to path: extracts
// fresh symbols from tree, writes file_symbols[path], writes symbols[id] for
// each, and removes any previously-indexed ID for path no longer present.
// Re-indexing unchanged content (same content hash) is a no-op, satisfying
// the "re-indexing after no change" idempotence property without walking
// the tree again.
func (idx *Index) IndexFile(path string, tree *language.ParseTree, contentHash uint64) []types.SymbolID {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if prev, ok := idx.contentHash[path]; ok && prev == contentHash {
		return append([]types.SymbolID(nil), idx.fileSymbols[path]...)
	}

	newSymbols := extractSymbols(path, tree)

	newIDs := make([]types.SymbolID, 0, len(newSymbols))
	newSet := make(map[types.SymbolID]bool, len(newSymbols))
	for _, sym := range newSymbols {
		newIDs = append(newIDs, sym.ID)
		newSet[sym.ID] = true
	}

	for _, oldID := range idx.fileSymbols[path] {
		if !newSet[oldID] {
			delete(idx.symbols, oldID)
			delete(idx.callGraph, oldID)
			delete(idx.inheritance, oldID)
		}
	}

	idx.fileSymbols[path] = newIDs
	for _, sym := range newSymbols {
		idx.symbols[sym.ID] = sym
	}
	idx.contentHash[path] = contentHash

	return newIDs
}

// InvalidateFile drops every symbol, call-graph edge, and import recorded
// for path, as if it had never been indexed. Used when a watched file is
// removed from disk, where there is no fresh tree to re-index against.
func (idx *Index) InvalidateFile(path string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, id := range idx.fileSymbols[path] {
		delete(idx.symbols, id)
		delete(idx.callGraph, id)
		delete(idx.inheritance, id)
	}
	delete(idx.fileSymbols, path)
	delete(idx.imports, path)
	delete(idx.contentHash, path)
}

// GetFileSymbols returns the ordered symbol IDs for path, or nil if the
// file has never been indexed. Never errors: an absent path is an empty
// result, per spec §4.4's relation-query contract.
func (idx *Index) GetFileSymbols(path string) []types.SymbolID {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]types.SymbolID(nil), idx.fileSymbols[path]...)
}

// GetSymbol looks up a single symbol by ID.
func (idx *Index) GetSymbol(id types.SymbolID) (types.Symbol, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	sym, ok := idx.symbols[id]
	return sym, ok
}

// Search returns every symbol whose name contains nameSubstring, matched
// case-insensitively.
func (idx *Index) Search(nameSubstring string) []types.Symbol {
	needle := strings.ToLower(nameSubstring)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var out []types.Symbol
	for _, sym := range idx.symbols {
		if strings.Contains(strings.ToLower(sym.Name), needle) {
			out = append(out, sym)
		}
	}
	return out
}

// GetCallGraph returns the callees recorded for the symbol named
// functionName inside path, or an empty slice if the symbol or any edges
// are absent — call/inheritance graph population is an extensible hook
// (spec §4.4, §9 Open Question 1) that may legitimately be empty.
func (idx *Index) GetCallGraph(path, functionName string) []types.SymbolID {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, id := range idx.fileSymbols[path] {
		sym, ok := idx.symbols[id]
		if ok && sym.Name == functionName {
			return append([]types.SymbolID(nil), idx.callGraph[id]...)
		}
	}
	return nil
}

// AddCallEdge records that caller invokes callee. The edge is dropped,
// not stored, if either endpoint is absent from the symbol table (I4).
func (idx *Index) AddCallEdge(caller, callee types.SymbolID) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.symbols[caller]; !ok {
		return
	}
	if _, ok := idx.symbols[callee]; !ok {
		return
	}
	idx.callGraph[caller] = append(idx.callGraph[caller], callee)
}

// GetImports returns the import targets recorded for path.
func (idx *Index) GetImports(path string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]string(nil), idx.imports[path]...)
}

// SetImports atomically replaces the import list for path.
func (idx *Index) SetImports(path string, targets []string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.imports[path] = append([]string(nil), targets...)
}

// nodeText is a small shared helper for slicing a node's exact source text.
func nodeText(n *tree_sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}
