package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const watchedGoSource = `package sample

func Add(a, b int) int {
	return a + b
}
`

func TestWatcher_InvalidatesCacheAndIndexOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(watchedGoSource), 0o644))

	eng := New(Config{CacheBudgetBytes: 8 << 20})
	_, err := eng.ParseFile(path)
	require.NoError(t, err)
	require.True(t, eng.cache.Contains(path))
	require.NotEmpty(t, eng.GetFileSymbols(path))

	watcher, err := NewWatcher(eng)
	require.NoError(t, err)
	require.NoError(t, watcher.Start(dir))
	defer watcher.Stop()

	rewritten := watchedGoSource + "\nfunc Sub(a, b int) int { return a - b }\n"
	require.NoError(t, os.WriteFile(path, []byte(rewritten), 0o644))

	require.Eventually(t, func() bool {
		return !eng.cache.Contains(path)
	}, 2*time.Second, 10*time.Millisecond, "watcher did not invalidate the parser cache entry")
}

func TestWatcher_ForgetsRemovedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	require.NoError(t, os.WriteFile(path, []byte(watchedGoSource), 0o644))

	eng := New(Config{CacheBudgetBytes: 8 << 20})
	_, err := eng.ParseFile(path)
	require.NoError(t, err)

	watcher, err := NewWatcher(eng)
	require.NoError(t, err)
	require.NoError(t, watcher.Start(dir))
	defer watcher.Stop()

	require.NoError(t, os.Remove(path))

	require.Eventually(t, func() bool {
		eng.knownMu.Lock()
		defer eng.knownMu.Unlock()
		for _, p := range eng.known {
			if p == path {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond, "watcher did not forget the removed file")
}
