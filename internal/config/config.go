// Package config loads the core's tunables from a KDL file, falling back to
// hardcoded defaults when none is present.
package config

import (
	"time"
)

// Config is the full set of knobs the engine, search layers, and MCP
// transport read at startup.
type Config struct {
	Cache  Cache
	Search Search
	Grep   Grep
	MCP    MCP
	Watch  Watch
	// DisabledLanguages lists language names (matching types.Language's
	// String(), e.g. "Haskell") to disable detection for, on top of the
	// registry's built-in rejected set. Empty means "use every language the
	// registry knows about".
	DisabledLanguages []string
}

// Cache configures C2's byte-budget LRU.
type Cache struct {
	BudgetBytes int64
}

// Search configures C5's default routing and per-query timeout.
type Search struct {
	DefaultTimeout time.Duration
	DefaultLimit   int
	CombinedMode   bool
}

// Grep configures the layer-4 external fallback.
type Grep struct {
	Binary      string
	Concurrency int64
}

// MCP configures the stdio transport identity reported to clients.
type MCP struct {
	ServerName    string
	ServerVersion string
}

// Watch configures the optional fsnotify-backed filesystem-watch mode that
// invalidates C2/C4 entries when a watched file changes on disk.
type Watch struct {
	Enabled bool
}

// Default returns the configuration used when no .codeintel.kdl file is
// present, or a field is left unset in one that is.
func Default() *Config {
	return &Config{
		Cache: Cache{BudgetBytes: 256 * 1024 * 1024},
		Search: Search{
			DefaultTimeout: 10 * time.Second,
			DefaultLimit:   100,
			CombinedMode:   false,
		},
		Grep: Grep{
			Binary:      "rg",
			Concurrency: 4,
		},
		MCP: MCP{
			ServerName:    "codeintel-mcp-server",
			ServerVersion: "0.1.0",
		},
		Watch: Watch{Enabled: false},
	}
}
