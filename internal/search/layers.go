// Package search implements C5: a four-layer query router that tries the
// cheapest backend able to answer a query before falling through to the
// next, merging across layers only in Combined mode.
package search

import (
	"context"

	"github.com/lumenforge/codeintel/internal/types"
)

// Layer is one backend in the ordered chain. Search returns its matches
// together with the provenance tag it should be reported under; an empty,
// nil-error result means "tried, found nothing" — distinct from an error.
type Layer interface {
	Name() types.SearchLayer
	CanHandle(q types.SearchQuery) bool
	Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error)
}

// resultKey identifies a match for Combined-mode dedup by (path, line, column).
type resultKey struct {
	path string
	line int
	col  int
}

// mergeDedupe merges result sets from multiple layers, keeping the
// highest-scoring result for each (path, line, column) and retaining the
// provenance of whichever copy is kept.
func mergeDedupe(all [][]types.SearchResult) []types.SearchResult {
	best := make(map[resultKey]types.SearchResult)
	order := make([]resultKey, 0)

	for _, set := range all {
		for _, r := range set {
			k := resultKey{r.FilePath, r.Line, r.Column}
			existing, ok := best[k]
			if !ok {
				order = append(order, k)
				best[k] = r
				continue
			}
			if r.Score > existing.Score {
				best[k] = r
			}
		}
	}

	out := make([]types.SearchResult, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}
