package semantic

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"github.com/lumenforge/codeintel/internal/language"
	"github.com/lumenforge/codeintel/internal/types"
)

const rustSample = `pub fn calculate(x: i32, y: i32) -> i32 { add(x, y) }
fn add(a: i32, b: i32) -> i32 { a + b }
pub struct Calculator { value: i32 }
`

func hashOf(s string) uint64 { return xxhash.Sum64String(s) }

func TestIndexFile_ExtractsScenarioS2Symbols(t *testing.T) {
	reg := language.NewRegistry()
	tree, err := reg.ParseFile("t.rs", []byte(rustSample))
	require.NoError(t, err)

	idx := New()
	ids := idx.IndexFile("t.rs", tree, hashOf(rustSample))
	require.GreaterOrEqual(t, len(ids), 3)

	results := idx.Search("calc")
	require.NotEmpty(t, results)

	var calc *types.Symbol
	for i := range results {
		if results[i].Name == "calculate" {
			calc = &results[i]
		}
	}
	require.NotNil(t, calc)
	require.Equal(t, types.VisPublic, calc.Visibility)
	require.Equal(t, "pub fn calculate(x: i32, y: i32) -> i32", calc.Signature)
}

func TestIndexFile_ReindexUnchangedIsNoOp(t *testing.T) {
	reg := language.NewRegistry()
	tree, err := reg.ParseFile("t.rs", []byte(rustSample))
	require.NoError(t, err)

	idx := New()
	hash := hashOf(rustSample)
	first := idx.IndexFile("t.rs", tree, hash)
	second := idx.IndexFile("t.rs", tree, hash)

	require.Equal(t, first, second)
}

func TestIndexFile_AtomicReplaceDropsRemovedSymbols(t *testing.T) {
	reg := language.NewRegistry()

	v1 := "fn a() {}\nfn b() {}\n"
	tree1, err := reg.ParseFile("x.rs", []byte(v1))
	require.NoError(t, err)

	idx := New()
	idx.IndexFile("x.rs", tree1, hashOf(v1))
	require.Len(t, idx.GetFileSymbols("x.rs"), 2)

	v2 := "fn a() {}\n"
	tree2, err := reg.ParseFile("x.rs", []byte(v2))
	require.NoError(t, err)
	idx.IndexFile("x.rs", tree2, hashOf(v2))

	ids := idx.GetFileSymbols("x.rs")
	require.Len(t, ids, 1)
	for _, id := range ids {
		_, ok := idx.GetSymbol(id)
		require.True(t, ok)
	}
}

func TestGetCallGraph_EmptyWithoutError(t *testing.T) {
	idx := New()
	edges := idx.GetCallGraph("nope.rs", "nothing")
	require.Empty(t, edges)
}

func TestAddCallEdge_DropsDanglingEndpoints(t *testing.T) {
	reg := language.NewRegistry()
	tree, err := reg.ParseFile("t.rs", []byte(rustSample))
	require.NoError(t, err)

	idx := New()
	idx.IndexFile("t.rs", tree, hashOf(rustSample))

	bogus := types.NewSymbolID("t.rs", types.KindFunction, "doesnotexist")
	real := types.NewSymbolID("t.rs", types.KindFunction, "calculate")

	idx.AddCallEdge(bogus, real)
	idx.AddCallEdge(real, bogus)

	require.Empty(t, idx.GetCallGraph("t.rs", "calculate"))
}
