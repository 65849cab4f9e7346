package search

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures no goroutines leak across this package's tests —
// SearchStream runs each query on its own goroutine and the ripgrep layer
// drives an external process, so a stray
// goroutine here is exactly the kind of bug this package exists to avoid.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
