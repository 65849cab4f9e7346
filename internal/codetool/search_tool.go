package codetool

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/lumenforge/codeintel/internal/engine"
	"github.com/lumenforge/codeintel/internal/types"
)

type searchTool struct {
	eng *engine.Engine
}

func (t *searchTool) Name() string { return "search" }

func (t *searchTool) Description() string {
	return "Search the workspace across symbol, full-text, fuzzy, and structural layers, " +
		"falling back to an external grep when earlier layers come up empty."
}

func (t *searchTool) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Text to search for",
			},
			"type": {
				Type:        "string",
				Description: "Query type: Symbol, Definition, Reference, FullText, Fuzzy, or Structural (default FullText)",
			},
			"directory": {
				Type:        "string",
				Description: "Restrict the search to files under this directory",
			},
			"limit": {
				Type:        "integer",
				Description: "Maximum number of results",
			},
			"combined": {
				Type:        "boolean",
				Description: "Merge results across every layer attempted instead of stopping at the first non-empty one",
			},
		},
		Required: []string{"query"},
	}
}

func (t *searchTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	query, err := stringArg(args, "query")
	if err != nil {
		return nil, err
	}

	mode := types.RoutingFirstMatch
	if v, ok := args["combined"].(bool); ok && v {
		mode = types.RoutingCombined
	}

	q := types.SearchQuery{
		Text:  query,
		Type:  queryType(stringArgDefault(args, "type", "FullText")),
		Limit: intArgDefault(args, "limit", 0),
		Mode:  mode,
		Filters: types.SearchFilters{
			Directory: stringArgDefault(args, "directory", ""),
		},
	}

	results, stats, err := t.eng.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return struct {
		Results []types.SearchResult `json:"results"`
		Stats   types.SearchStats    `json:"stats"`
	}{Results: results, Stats: stats}, nil
}

func queryType(s string) types.QueryType {
	switch s {
	case "Symbol", "symbol":
		return types.QuerySymbol
	case "Definition", "definition":
		return types.QueryDefinition
	case "Reference", "reference":
		return types.QueryReference
	case "Fuzzy", "fuzzy":
		return types.QueryFuzzy
	case "Structural", "structural":
		return types.QueryStructural
	default:
		return types.QueryFullText
	}
}
