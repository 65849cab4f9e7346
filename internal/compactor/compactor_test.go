package compactor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenforge/codeintel/internal/language"
	"github.com/lumenforge/codeintel/internal/types"
)

const rustSample = `pub fn calculate(x: i32, y: i32) -> i32 { add(x, y) }
fn add(a: i32, b: i32) -> i32 { a + b }
pub struct Calculator { value: i32 }
`

func TestCompact_OrderingAcrossLevels(t *testing.T) {
	reg := language.NewRegistry()
	tree, err := reg.ParseFile("t.rs", []byte(rustSample))
	require.NoError(t, err)

	comp := New()
	light := comp.Compact(tree, types.CompactLight)
	medium := comp.Compact(tree, types.CompactMedium)
	hard := comp.Compact(tree, types.CompactHard)

	require.LessOrEqual(t, hard.CompressedBytes, medium.CompressedBytes)
	require.LessOrEqual(t, medium.CompressedBytes, light.CompressedBytes)
	require.LessOrEqual(t, light.CompressedBytes, len(rustSample))
}

func TestCompact_HardKeepsSignaturesDropsBodies(t *testing.T) {
	reg := language.NewRegistry()
	tree, err := reg.ParseFile("t.rs", []byte(rustSample))
	require.NoError(t, err)

	hard := New().Compact(tree, types.CompactHard)

	require.Contains(t, hard.CompactedText, "calculate")
	require.Contains(t, hard.CompactedText, "Calculator")
	require.NotContains(t, hard.CompactedText, "a + b")
}

func TestCompact_EmptySource(t *testing.T) {
	reg := language.NewRegistry()
	tree, err := reg.ParseFile("empty.go", []byte(""))
	require.NoError(t, err)

	result := New().Compact(tree, types.CompactLight)
	require.Equal(t, 0, result.OriginalBytes)
	require.Equal(t, 0, result.ElementCount)
}

func TestCompactThread_CompactsFencedBlocksOnly(t *testing.T) {
	messages := []types.ThreadMessage{
		{Role: "user", Content: "please review this:\n```go\nfunc add(a, b int) int {\n  return a + b\n}\n```\nthanks"},
	}

	_, metrics := New().CompactThread(messages, types.CompactHard)

	require.Equal(t, 1, metrics.MessagesProcessed)
	require.Equal(t, 1, metrics.CodeBlocksCompressed)
}
