package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenforge/codeintel/internal/semantic"
	"github.com/lumenforge/codeintel/internal/types"
)

func TestEngine_SymbolQueryUsesSymbolIndexLayer(t *testing.T) {
	idx := semantic.New()
	engine := NewEngine(NewSymbolIndexLayer(idx), NewFullTextLayer())

	// No symbols indexed: query returns empty without error and without
	// reaching into the full-text layer's vocabulary.
	results, stats, err := engine.Search(context.Background(), types.SearchQuery{
		Text: "SearchEngine",
		Type: types.QuerySymbol,
	})
	require.NoError(t, err)
	require.Empty(t, results)
	require.Contains(t, stats.LayersTried, types.LayerSymbolIndex)
}

func TestEngine_FullTextFallsThroughToRipgrepWhenDisabledLayersEmpty(t *testing.T) {
	ft := NewFullTextLayer()
	engine := NewEngine(ft, NewRipgrepLayer("a-binary-that-does-not-exist-anywhere", 4))

	_, stats, err := engine.Search(context.Background(), types.SearchQuery{
		Text: "engine",
		Type: types.QueryFullText,
	})
	require.Error(t, err)
	require.Contains(t, stats.LayersTried, types.LayerFullText)
}

func TestEngine_CombinedModeDedupesByPathLineColumn(t *testing.T) {
	a := stubLayer{name: types.LayerSymbolIndex, canHandle: true, results: []types.SearchResult{
		{FilePath: "x.go", Line: 1, Column: 1, Score: 0.5},
	}}
	b := stubLayer{name: types.LayerFullText, canHandle: true, results: []types.SearchResult{
		{FilePath: "x.go", Line: 1, Column: 1, Score: 0.9},
		{FilePath: "y.go", Line: 2, Column: 1, Score: 0.3},
	}}

	engine := NewEngine(a, b)
	results, _, err := engine.Search(context.Background(), types.SearchQuery{
		Text: "q", Type: types.QueryFullText, Mode: types.RoutingCombined,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		if r.FilePath == "x.go" {
			require.Equal(t, 0.9, r.Score)
		}
	}
}

type stubLayer struct {
	name      types.SearchLayer
	canHandle bool
	results   []types.SearchResult
}

func (s stubLayer) Name() types.SearchLayer                      { return s.name }
func (s stubLayer) CanHandle(q types.SearchQuery) bool            { return s.canHandle }
func (s stubLayer) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	return s.results, nil
}
