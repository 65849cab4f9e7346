package codetool

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/lumenforge/codeintel/internal/engine"
)

type compactTool struct {
	eng *engine.Engine
}

func (t *compactTool) Name() string { return "compact" }

func (t *compactTool) Description() string {
	return "Compact a source file's AST to a textual skeleton at Light, Medium, or Hard level."
}

func (t *compactTool) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {
				Type:        "string",
				Description: "Path to the source file to compact",
			},
			"level": {
				Type:        "string",
				Description: "Compaction level: light, medium (default), or hard",
			},
		},
		Required: []string{"path"},
	}
}

func (t *compactTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	level := parseLevel(stringArgDefault(args, "level", "medium"))

	return t.eng.CompactCode(path, level)
}
