package embed

import (
	"testing"

	"github.com/stretchr/testify/require"

	coreerrors "github.com/lumenforge/codeintel/internal/errors"
)

func TestStore_PutRejectsDimensionMismatch(t *testing.T) {
	s := NewStore(Key{Workspace: "ws", ProviderID: "openai-small", Dimensions: 3})
	err := s.Put("a.go", Vector{1, 2})
	require.Error(t, err)
	require.True(t, coreerrors.IsKind(err, coreerrors.KindDimensionMismatch))
}

func TestStore_NearestRanksByCosineSimilarity(t *testing.T) {
	s := NewStore(Key{Workspace: "ws", ProviderID: "openai-small", Dimensions: 2})
	require.NoError(t, s.Put("same.go", Vector{1, 0}))
	require.NoError(t, s.Put("orthogonal.go", Vector{0, 1}))
	require.NoError(t, s.Put("opposite.go", Vector{-1, 0}))

	out, err := s.Nearest(Vector{1, 0}, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"same.go", "orthogonal.go"}, out)
}

func TestStore_NearestRejectsDimensionMismatch(t *testing.T) {
	s := NewStore(Key{Workspace: "ws", ProviderID: "openai-small", Dimensions: 2})
	_, err := s.Nearest(Vector{1, 2, 3}, 1)
	require.Error(t, err)
	require.True(t, coreerrors.IsKind(err, coreerrors.KindDimensionMismatch))
}

func TestStore_DeleteRemovesEntry(t *testing.T) {
	s := NewStore(Key{Workspace: "ws", ProviderID: "p", Dimensions: 1})
	require.NoError(t, s.Put("a.go", Vector{1}))
	require.Equal(t, 1, s.Len())
	s.Delete("a.go")
	require.Equal(t, 0, s.Len())
}
