package codetool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenforge/codeintel/internal/engine"
	"github.com/lumenforge/codeintel/internal/types"
)

const rustSample = `pub struct Calculator {
    value: i32,
}

pub fn calculate(x: i32, y: i32) -> i32 {
    x + y
}
`

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.rs")
	require.NoError(t, os.WriteFile(path, []byte(rustSample), 0o644))

	eng := engine.New(engine.Config{CacheBudgetBytes: 8 << 20})
	return NewRegistry(eng), path
}

func TestRegistry_ListsAllFiveTools(t *testing.T) {
	reg, _ := newTestRegistry(t)
	names := make(map[string]bool)
	for _, tool := range reg.List() {
		names[tool.Name()] = true
	}
	for _, want := range []string{"parse", "compact", "search", "symbols", "call-graph"} {
		require.True(t, names[want], "expected tool %q to be registered", want)
	}
}

func TestParseTool_ReturnsLanguageAndRootKind(t *testing.T) {
	reg, path := newTestRegistry(t)
	tool, ok := reg.Get("parse")
	require.True(t, ok)

	res, err := tool.Execute(context.Background(), map[string]any{"path": path})
	require.NoError(t, err)

	pr, ok := res.(parseResult)
	require.True(t, ok)
	require.Equal(t, "Rust", pr.Language)
	require.NotEmpty(t, pr.RootKind)
}

func TestCompactTool_HardLevelDropsBody(t *testing.T) {
	reg, path := newTestRegistry(t)
	tool, ok := reg.Get("compact")
	require.True(t, ok)

	res, err := tool.Execute(context.Background(), map[string]any{
		"path":  path,
		"level": "hard",
	})
	require.NoError(t, err)

	cr, ok := res.(types.CompactionResult)
	require.True(t, ok)
	require.Contains(t, cr.CompactedText, "calculate")
	require.NotContains(t, cr.CompactedText, "x + y")
}

func TestSymbolsTool_RequiresPathOrQuery(t *testing.T) {
	reg, _ := newTestRegistry(t)
	tool, ok := reg.Get("symbols")
	require.True(t, ok)

	_, err := tool.Execute(context.Background(), map[string]any{})
	require.ErrorIs(t, err, errMissingPathOrQuery)
}

func TestSymbolsTool_ListsSymbolsForFile(t *testing.T) {
	reg, path := newTestRegistry(t)
	tool, ok := reg.Get("symbols")
	require.True(t, ok)

	res, err := tool.Execute(context.Background(), map[string]any{"path": path})
	require.NoError(t, err)
	require.NotEmpty(t, res)
}

func TestCallGraphTool_EmptyWithoutErrorWhenUnknown(t *testing.T) {
	reg, path := newTestRegistry(t)
	tool, ok := reg.Get("call-graph")
	require.True(t, ok)

	res, err := tool.Execute(context.Background(), map[string]any{
		"path":     path,
		"function": "calculate",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
}
