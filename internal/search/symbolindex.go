package search

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lumenforge/codeintel/internal/semantic"
	"github.com/lumenforge/codeintel/internal/types"
)

// SymbolIndexLayer answers Symbol/Definition/Reference queries directly from
// C4's in-memory symbol table, the cheapest of the four layers.
type SymbolIndexLayer struct {
	index *semantic.Index
}

// NewSymbolIndexLayer wraps an existing semantic index.
func NewSymbolIndexLayer(index *semantic.Index) *SymbolIndexLayer {
	return &SymbolIndexLayer{index: index}
}

func (l *SymbolIndexLayer) Name() types.SearchLayer { return types.LayerSymbolIndex }

// CanHandle reports true for any Symbol/Definition/Reference query with
// non-empty text. The text is not checked to be a single identifier, and
// filters play no part in the decision.
func (l *SymbolIndexLayer) CanHandle(q types.SearchQuery) bool {
	switch q.Type {
	case types.QuerySymbol, types.QueryDefinition, types.QueryReference:
		return strings.TrimSpace(q.Text) != ""
	default:
		return false
	}
}

func (l *SymbolIndexLayer) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	symbols := l.index.Search(q.Text)

	out := make([]types.SearchResult, 0, len(symbols))
	for _, sym := range symbols {
		select {
		case <-ctx.Done():
			return out, nil
		default:
		}
		if !matchesFilters(sym.Location.FilePath, q.Filters) {
			continue
		}
		score := 0.5
		if strings.EqualFold(sym.Name, q.Text) {
			score = 1.0
		}
		out = append(out, types.SearchResult{
			FilePath:   sym.Location.FilePath,
			Line:       sym.Location.StartLine,
			Column:     sym.Location.StartCol,
			EndLine:    sym.Location.EndLine,
			EndCol:     sym.Location.EndCol,
			MatchText:  sym.Signature,
			Score:      score,
			Layer:      types.LayerSymbolIndex,
			SymbolID:   sym.ID,
			SymbolName: sym.Name,
			SymbolKind: sym.Kind,
		})
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

// matchesFilters applies the files/directory filters common to every layer;
// the Languages filter is not checked. Files and Directory are doublestar glob patterns (e.g.
// "internal/**/*.go"), not literal paths — a bad pattern doesn't fail the
// query, it just never matches.
func matchesFilters(path string, f types.SearchFilters) bool {
	if len(f.Files) > 0 {
		found := false
		for _, pattern := range f.Files {
			if matched, err := doublestar.Match(pattern, path); err == nil && matched {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Directory != "" {
		pattern := strings.TrimSuffix(f.Directory, "/") + "/**"
		if matched, err := doublestar.Match(pattern, path); err != nil || !matched {
			return false
		}
	}
	return true
}
