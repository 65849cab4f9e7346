package codetool

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/lumenforge/codeintel/internal/engine"
)

type callGraphTool struct {
	eng *engine.Engine
}

func (t *callGraphTool) Name() string { return "call-graph" }

func (t *callGraphTool) Description() string {
	return "Return the symbol IDs a given function calls, as recorded by the semantic index's call graph."
}

func (t *callGraphTool) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {
				Type:        "string",
				Description: "File the function is declared in",
			},
			"function": {
				Type:        "string",
				Description: "Name of the function to look up",
			},
		},
		Required: []string{"path", "function"},
	}
}

func (t *callGraphTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	function, err := stringArg(args, "function")
	if err != nil {
		return nil, err
	}
	return t.eng.GetCallGraph(path, function), nil
}
