package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const goSample = `package sample

func Add(a, b int) int {
	return a + b
}
`

func TestApp_DetectParseCompactIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(goSample), 0o644))

	app := newApp()

	require.NoError(t, app.Run([]string{"codeintel", "--root", dir, "detect", path}))
	require.NoError(t, app.Run([]string{"codeintel", "--root", dir, "parse", path}))
	require.NoError(t, app.Run([]string{"codeintel", "--root", dir, "compact", "--level", "hard", path}))
	require.NoError(t, app.Run([]string{"codeintel", "--root", dir, "index", path}))
	require.NoError(t, app.Run([]string{"codeintel", "--root", dir, "stats"}))
}

func TestApp_ParseRequiresPathArgument(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"codeintel", "parse"})
	require.Error(t, err)
}

func TestApp_SearchUsesConfiguredDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(goSample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codeintel.kdl"), []byte(`search {
    default_limit 3
    combined_mode true
}
`), 0o644))

	app := newApp()
	require.NoError(t, app.Run([]string{"codeintel", "--root", dir, "parse", path}))
	require.NoError(t, app.Run([]string{"codeintel", "--root", dir, "search", "Add"}))
	require.Equal(t, 3, cfgPtr.Search.DefaultLimit)
	require.True(t, cfgPtr.Search.CombinedMode)
}

func TestApp_DetectRejectsDisabledLanguage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(goSample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codeintel.kdl"), []byte(`disabled_languages "Go"
`), 0o644))

	app := newApp()
	err := app.Run([]string{"codeintel", "--root", dir, "detect", path})
	require.Error(t, err)
}
