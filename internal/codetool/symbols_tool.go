package codetool

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/lumenforge/codeintel/internal/engine"
	"github.com/lumenforge/codeintel/internal/types"
)

type symbolsTool struct {
	eng *engine.Engine
}

func (t *symbolsTool) Name() string { return "symbols" }

func (t *symbolsTool) Description() string {
	return "List symbols declared in a file, or search by name substring across the whole index."
}

func (t *symbolsTool) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {
				Type:        "string",
				Description: "File to list symbol IDs for; parses the file first if not already indexed",
			},
			"query": {
				Type:        "string",
				Description: "Case-insensitive name substring to search across every indexed file",
			},
		},
	}
}

func (t *symbolsTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	if query := stringArgDefault(args, "query", ""); query != "" {
		return t.eng.SearchSymbols(query), nil
	}

	path := stringArgDefault(args, "path", "")
	if path == "" {
		return nil, errMissingPathOrQuery
	}
	tree, err := t.eng.ParseFile(path)
	if err != nil {
		return nil, err
	}
	tree.Release()

	ids := t.eng.GetFileSymbols(path)
	out := make([]types.SymbolID, len(ids))
	copy(out, ids)
	return out, nil
}
