// Package language owns the language catalog (C1): detecting a file's
// language from its extension, dispatching to the right tree-sitter grammar,
// and constructing the ParseTree values the rest of the core shares by
// reference.
package language

import (
	"sync/atomic"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lumenforge/codeintel/internal/types"
)

// ParseTree is an opaque concrete syntax tree owned together with the exact
// source bytes it was parsed from (I1: no aliasing a tree across paths).
// It is reference-counted so the parser cache can evict its own handle while
// in-flight readers keep working against a stable tree.
type ParseTree struct {
	tree     *tree_sitter.Tree
	source   []byte
	language types.Language
	fallback bool // true if this tree was produced by a borrowed grammar

	refs int32
}

// newParseTree wraps a freshly parsed tree. Ownership starts at one reference
// held by the caller (normally the parser cache, immediately on insert).
func newParseTree(tree *tree_sitter.Tree, source []byte, lang types.Language, fallback bool) *ParseTree {
	return &ParseTree{tree: tree, source: source, language: lang, fallback: fallback, refs: 1}
}

// Retain increments the reference count; call before handing the tree to a
// second owner (e.g. a cache entry copied into a result set).
func (t *ParseTree) Retain() *ParseTree {
	if t == nil {
		return nil
	}
	atomic.AddInt32(&t.refs, 1)
	return t
}

// Release decrements the reference count and frees the underlying tree-sitter
// tree once no owner remains. Safe to call from the cache on eviction even
// while other readers still hold a Retain()'d handle — they release later.
func (t *ParseTree) Release() {
	if t == nil {
		return
	}
	if atomic.AddInt32(&t.refs, -1) <= 0 && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Source returns the exact bytes the tree was parsed from. Callers must
// treat the slice as read-only: mutating it without reparsing violates I1.
func (t *ParseTree) Source() []byte { return t.source }

// Language reports which grammar produced this tree.
func (t *ParseTree) Language() types.Language { return t.language }

// UsedFallback reports whether the tree was built with a borrowed grammar.
func (t *ParseTree) UsedFallback() bool { return t.fallback }

// Root returns the tree-sitter root node for walking.
func (t *ParseTree) Root() *tree_sitter.Node {
	if t.tree == nil {
		return nil
	}
	root := t.tree.RootNode()
	return root
}

// RootAstNode projects the root node into the wire-safe AstNode surface.
func (t *ParseTree) RootAstNode() types.AstNode {
	root := t.Root()
	if root == nil {
		return types.AstNode{}
	}
	return ProjectNode(root)
}

// ProjectNode converts a tree-sitter node into its serializable surface view.
func ProjectNode(n *tree_sitter.Node) types.AstNode {
	if n == nil {
		return types.AstNode{}
	}
	start, end := n.StartPosition(), n.EndPosition()
	return types.AstNode{
		Kind:       n.Kind(),
		StartByte:  n.StartByte(),
		EndByte:    n.EndByte(),
		StartRow:   start.Row,
		StartCol:   start.Column,
		EndRow:     end.Row,
		EndCol:     end.Column,
		ChildCount: n.ChildCount(),
	}
}

// EstimatedSize approximates memory footprint for the parser cache's byte
// budget: source bytes plus a per-root-child overhead. Mirrors the teacher's
// "size = len(source) + child_count*64" cache model exactly — child_count is
// the root node's immediate child count, not a total descendant walk.
func (t *ParseTree) EstimatedSize() int64 {
	root := t.Root()
	if root == nil {
		return int64(len(t.source))
	}
	return int64(len(t.source)) + int64(root.ChildCount())*64
}
