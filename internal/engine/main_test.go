package engine

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures the watcher's background goroutine and the per-path
// locking in ParseFile never leak across a test run.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
