package search

import (
	"context"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lumenforge/codeintel/internal/cache"
	"github.com/lumenforge/codeintel/internal/types"
)

// AstCacheLayer answers Structural queries by walking trees already resident
// in the parser cache (C2), matching nodes whose kind contains the query
// text. It never triggers a parse of its own — a cache miss is simply not
// searched, keeping this layer's cost bounded by what's already resident.
type AstCacheLayer struct {
	cache      *cache.ParserCache
	knownPaths func() []string // paths the owning engine has ever parsed
}

// NewAstCacheLayer wraps a parser cache together with a callback reporting
// the set of paths the owning engine has seen, since ParserCache itself does
// not enumerate its keys and that set grows over the engine's lifetime.
func NewAstCacheLayer(c *cache.ParserCache, knownPaths func() []string) *AstCacheLayer {
	return &AstCacheLayer{cache: c, knownPaths: knownPaths}
}

func (l *AstCacheLayer) Name() types.SearchLayer { return types.LayerAstCache }

func (l *AstCacheLayer) CanHandle(q types.SearchQuery) bool {
	return q.Type == types.QueryStructural && strings.TrimSpace(q.Text) != ""
}

func (l *AstCacheLayer) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	selector := strings.ToLower(q.Text)
	var out []types.SearchResult

	for _, path := range l.knownPaths() {
		select {
		case <-ctx.Done():
			return out, nil
		default:
		}
		if !matchesFilters(path, q.Filters) {
			continue
		}
		tree, ok := l.cache.Get(path)
		if !ok {
			continue
		}
		root := tree.Root()
		source := tree.Source()
		walkStructural(ctx, root, source, path, selector, &out)
		tree.Release()
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

func walkStructural(ctx context.Context, n *tree_sitter.Node, source []byte, path, selector string, out *[]types.SearchResult) {
	if n == nil {
		return
	}
	select {
	case <-ctx.Done():
		return
	default:
	}

	if strings.Contains(n.Kind(), selector) {
		start := n.StartPosition()
		*out = append(*out, types.SearchResult{
			FilePath:  path,
			Line:      int(start.Row) + 1,
			Column:    int(start.Column) + 1,
			MatchText: string(source[n.StartByte():n.EndByte()]),
			Score:     1.0,
			Layer:     types.LayerAstCache,
		})
	}

	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		walkStructural(ctx, n.Child(i), source, path, selector, out)
	}
}
