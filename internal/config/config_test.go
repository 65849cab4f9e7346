package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_NoFilesReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadKDL_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `cache {
    budget_bytes 134217728
}
search {
    default_timeout_ms 5000
    default_limit 25
    combined_mode true
}
grep {
    binary "rg2"
    concurrency 8
}
watch {
    enabled true
}
disabled_languages "Haskell" "OCaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codeintel.kdl"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, int64(134217728), cfg.Cache.BudgetBytes)
	require.Equal(t, 5*time.Second, cfg.Search.DefaultTimeout)
	require.Equal(t, 25, cfg.Search.DefaultLimit)
	require.True(t, cfg.Search.CombinedMode)
	require.Equal(t, "rg2", cfg.Grep.Binary)
	require.Equal(t, int64(8), cfg.Grep.Concurrency)
	require.True(t, cfg.Watch.Enabled)
	require.Equal(t, []string{"Haskell", "OCaml"}, cfg.DisabledLanguages)
}

func TestLoadTOML_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `[cache]
budget_bytes = 67108864

[grep]
binary = "rg3"
concurrency = 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codeintel.toml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, int64(67108864), cfg.Cache.BudgetBytes)
	require.Equal(t, "rg3", cfg.Grep.Binary)
	require.Equal(t, int64(2), cfg.Grep.Concurrency)
}

func TestLoad_PrefersKDLOverTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codeintel.kdl"), []byte(`grep { binary "from-kdl" }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".codeintel.toml"), []byte(`[grep]
binary = "from-toml"
`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "from-kdl", cfg.Grep.Binary)
}
