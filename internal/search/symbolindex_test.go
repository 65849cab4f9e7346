package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenforge/codeintel/internal/types"
)

func TestMatchesFilters_FilesGlobPattern(t *testing.T) {
	require.True(t, matchesFilters("internal/search/engine.go", types.SearchFilters{
		Files: []string{"internal/**/*.go"},
	}))
	require.False(t, matchesFilters("cmd/codeintel/main.go", types.SearchFilters{
		Files: []string{"internal/**/*.go"},
	}))
}

func TestMatchesFilters_DirectoryGlobPrefix(t *testing.T) {
	require.True(t, matchesFilters("internal/search/engine.go", types.SearchFilters{
		Directory: "internal/search",
	}))
	require.False(t, matchesFilters("internal/cache/parser_cache.go", types.SearchFilters{
		Directory: "internal/search",
	}))
}

func TestMatchesFilters_NoFiltersMatchesEverything(t *testing.T) {
	require.True(t, matchesFilters("anything/at/all.go", types.SearchFilters{}))
}

func TestMatchesFilters_MalformedPatternDoesNotMatch(t *testing.T) {
	require.False(t, matchesFilters("x.go", types.SearchFilters{
		Files: []string{"[invalid"},
	}))
}
