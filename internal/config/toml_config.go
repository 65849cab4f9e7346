package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// tomlConfig mirrors Config in TOML's flat, struct-tag-driven style. Kept
// separate from Config itself so KDL stays the shape callers work with and
// this file stays a pure legacy-format adapter.
type tomlConfig struct {
	Cache struct {
		BudgetBytes int64 `toml:"budget_bytes"`
	} `toml:"cache"`
	Search struct {
		DefaultTimeoutMs int  `toml:"default_timeout_ms"`
		DefaultLimit     int  `toml:"default_limit"`
		CombinedMode     bool `toml:"combined_mode"`
	} `toml:"search"`
	Grep struct {
		Binary      string `toml:"binary"`
		Concurrency int64  `toml:"concurrency"`
	} `toml:"grep"`
	MCP struct {
		ServerName    string `toml:"server_name"`
		ServerVersion string `toml:"server_version"`
	} `toml:"mcp"`
	Watch struct {
		Enabled bool `toml:"enabled"`
	} `toml:"watch"`
	DisabledLanguages []string `toml:"disabled_languages"`
}

// LoadTOML loads the legacy .codeintel.toml format from projectRoot, for
// workspaces that haven't migrated to KDL yet. A missing file is not an
// error — it just means every default applies.
func LoadTOML(projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, ".codeintel.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read .codeintel.toml: %w", err)
	}

	var raw tomlConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse .codeintel.toml: %w", err)
	}

	cfg := Default()
	if raw.Cache.BudgetBytes > 0 {
		cfg.Cache.BudgetBytes = raw.Cache.BudgetBytes
	}
	if raw.Search.DefaultTimeoutMs > 0 {
		cfg.Search.DefaultTimeout = time.Duration(raw.Search.DefaultTimeoutMs) * time.Millisecond
	}
	if raw.Search.DefaultLimit > 0 {
		cfg.Search.DefaultLimit = raw.Search.DefaultLimit
	}
	cfg.Search.CombinedMode = raw.Search.CombinedMode
	if raw.Grep.Binary != "" {
		cfg.Grep.Binary = raw.Grep.Binary
	}
	if raw.Grep.Concurrency > 0 {
		cfg.Grep.Concurrency = raw.Grep.Concurrency
	}
	if raw.MCP.ServerName != "" {
		cfg.MCP.ServerName = raw.MCP.ServerName
	}
	if raw.MCP.ServerVersion != "" {
		cfg.MCP.ServerVersion = raw.MCP.ServerVersion
	}
	cfg.Watch.Enabled = raw.Watch.Enabled
	cfg.DisabledLanguages = raw.DisabledLanguages

	return cfg, nil
}

// Load tries KDL first, then falls back to the legacy TOML format, then
// hardcoded defaults — the order a workspace migrating formats expects.
func Load(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, ".codeintel.kdl")
	if _, err := os.Stat(kdlPath); err == nil {
		return LoadKDL(projectRoot)
	}

	tomlPath := filepath.Join(projectRoot, ".codeintel.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return LoadTOML(projectRoot)
	}

	return Default(), nil
}
