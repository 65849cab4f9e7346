package language

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenforge/codeintel/internal/types"
)

const sampleGoSource = `package sample

func Add(a, b int) int {
	return a + b
}

func Sub(a, b int) int {
	return a - b
}
`

func TestEstimatedSize_UsesRootImmediateChildCountOnly(t *testing.T) {
	r := NewRegistry()
	tree, err := r.Parse("sample.go", types.LangGo, []byte(sampleGoSource))
	require.NoError(t, err)
	defer tree.Release()

	root := tree.Root()
	require.NotNil(t, root)
	require.Positive(t, root.ChildCount())

	want := int64(len(sampleGoSource)) + int64(root.ChildCount())*64
	require.Equal(t, want, tree.EstimatedSize())
}

func TestEstimatedSize_IndependentOfNestingDepth(t *testing.T) {
	// Two files with the same number of top-level declarations but very
	// different internal nesting must report the same estimated size: the
	// formula counts the root's immediate children, not total descendants.
	shallow := "package sample\n\nfunc F() {}\n"
	deep := `package sample

func F() {
	if true {
		if true {
			if true {
				if true {
					_ = 1
				}
			}
		}
	}
}
`
	r := NewRegistry()
	t1, err := r.Parse("shallow.go", types.LangGo, []byte(shallow))
	require.NoError(t, err)
	defer t1.Release()
	t2, err := r.Parse("deep.go", types.LangGo, []byte(deep))
	require.NoError(t, err)
	defer t2.Release()

	require.Equal(t, t1.Root().ChildCount(), t2.Root().ChildCount())
	require.Equal(t,
		t1.EstimatedSize()-int64(len(shallow)),
		t2.EstimatedSize()-int64(len(deep)),
	)
}
