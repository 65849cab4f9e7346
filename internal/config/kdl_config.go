package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL loads .codeintel.kdl from projectRoot, if present, layering its
// values over Default(). A missing file is not an error — it just means
// every default applies.
func LoadKDL(projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, ".codeintel.kdl")
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read .codeintel.kdl: %w", err)
	}
	return parseKDL(string(content))
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse .codeintel.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "cache":
			for _, cn := range n.Children {
				if nodeName(cn) == "budget_bytes" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Cache.BudgetBytes = int64(v)
					}
				}
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "default_timeout_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.DefaultTimeout = time.Duration(v) * time.Millisecond
					}
				case "default_limit":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.DefaultLimit = v
					}
				case "combined_mode":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.CombinedMode = b
					}
				}
			}
		case "grep":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "binary":
					if s, ok := firstStringArg(cn); ok {
						cfg.Grep.Binary = s
					}
				case "concurrency":
					if v, ok := firstIntArg(cn); ok {
						cfg.Grep.Concurrency = int64(v)
					}
				}
			}
		case "mcp":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "server_name":
					if s, ok := firstStringArg(cn); ok {
						cfg.MCP.ServerName = s
					}
				case "server_version":
					if s, ok := firstStringArg(cn); ok {
						cfg.MCP.ServerVersion = s
					}
				}
			}
		case "watch":
			for _, cn := range n.Children {
				if nodeName(cn) == "enabled" {
					if b, ok := firstBoolArg(cn); ok {
						cfg.Watch.Enabled = b
					}
				}
			}
		case "disabled_languages":
			for _, arg := range n.Arguments {
				if s, ok := arg.Value.(string); ok {
					cfg.DisabledLanguages = append(cfg.DisabledLanguages, s)
				}
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	b, ok := n.Arguments[0].Value.(bool)
	return b, ok
}
