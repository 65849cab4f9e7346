package codetool

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/lumenforge/codeintel/internal/engine"
	"github.com/lumenforge/codeintel/internal/language"
)

type parseTool struct {
	eng *engine.Engine
}

func (t *parseTool) Name() string { return "parse" }

func (t *parseTool) Description() string {
	return "Parse a source file into a concrete syntax tree, populating the parser cache."
}

func (t *parseTool) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {
				Type:        "string",
				Description: "Path to the source file to parse",
			},
		},
		Required: []string{"path"},
	}
}

// parseResult is the JSON-serializable projection returned to callers; the
// tree itself never leaves the process (it is a refcounted, non-Go-safe
// wrapper around native tree-sitter state).
type parseResult struct {
	Path         string `json:"path"`
	Language     string `json:"language"`
	UsedFallback bool   `json:"used_fallback"`
	RootKind     string `json:"root_kind"`
	ByteLength   int    `json:"byte_length"`
}

func (t *parseTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	tree, err := t.eng.ParseFile(path)
	if err != nil {
		return nil, err
	}
	defer tree.Release()

	return parseResult{
		Path:         path,
		Language:     tree.Language().String(),
		UsedFallback: tree.UsedFallback(),
		RootKind:     rootKind(tree),
		ByteLength:   len(tree.Source()),
	}, nil
}

func rootKind(tree *language.ParseTree) string {
	root := tree.Root()
	if root == nil {
		return ""
	}
	return root.Kind()
}
