// Package codetool implements C7: a uniform tool-adapter surface over the
// engine (C6), one adapter per operation, each independently registrable
// with a transport (MCP, CLI, or otherwise). Modeled on the CodeTool trait
// the original implementation exposed for its own tool registry.
package codetool

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/lumenforge/codeintel/internal/engine"
	"github.com/lumenforge/codeintel/internal/types"
)

// Tool is the uniform adapter surface: a name, a description, a JSON Schema
// for its arguments, and an execute method returning an arbitrary result
// value the transport layer serializes.
type Tool interface {
	Name() string
	Description() string
	Schema() *jsonschema.Schema
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// Registry holds every tool this core exposes, keyed by name.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds the standard set of tools over eng: parse, compact,
// search, symbols, call-graph.
func NewRegistry(eng *engine.Engine) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range []Tool{
		&parseTool{eng: eng},
		&compactTool{eng: eng},
		&searchTool{eng: eng},
		&symbolsTool{eng: eng},
		&callGraphTool{eng: eng},
	} {
		r.tools[t.Name()] = t
	}
	return r
}

// Get returns the named tool, or false if no such tool is registered.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns every registered tool, in no particular order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	return out
}

var errMissingPathOrQuery = fmt.Errorf("one of %q or %q is required", "path", "query")

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

func stringArgDefault(args map[string]any, key, def string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func intArgDefault(args map[string]any, key string, def int) int {
	if v, ok := args[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return def
}

func parseLevel(s string) types.CompactionLevel {
	switch s {
	case "light", "Light":
		return types.CompactLight
	case "hard", "Hard":
		return types.CompactHard
	default:
		return types.CompactMedium
	}
}
