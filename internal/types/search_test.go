package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewQuery_ChainsIntoFullyConfiguredQuery(t *testing.T) {
	q := NewQuery("Add").
		WithType(QuerySymbol).
		WithLimit(20).
		WithContextLines(3).
		WithTimeout(5 * time.Second).
		WithMode(RoutingCombined).
		WithFilters(SearchFilters{Directory: "internal"})

	require.Equal(t, "Add", q.Text)
	require.Equal(t, QuerySymbol, q.Type)
	require.Equal(t, 20, q.Limit)
	require.Equal(t, 3, q.ContextLines)
	require.Equal(t, 5*time.Second, q.Timeout)
	require.Equal(t, RoutingCombined, q.Mode)
	require.Equal(t, "internal", q.Filters.Directory)
}

func TestNewQuery_DefaultsToFullText(t *testing.T) {
	require.Equal(t, QueryFullText, NewQuery("x").Type)
}
