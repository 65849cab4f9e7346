// Package mcp binds the C7 tool registry to the Model Context Protocol over
// stdio, one AddTool registration per codetool.Tool.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	gosdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lumenforge/codeintel/internal/codetool"
	"github.com/lumenforge/codeintel/internal/debug"
	"github.com/lumenforge/codeintel/internal/engine"
)

// Server wraps a gosdk.Server configured with every tool in a codetool.Registry.
type Server struct {
	server *gosdk.Server
	tools  *codetool.Registry
}

// NewServer builds the MCP server and registers every codetool.Tool against
// it, translating the tool's own Schema() into the tool's InputSchema.
func NewServer(eng *engine.Engine, name, version string) *Server {
	s := &Server{
		server: gosdk.NewServer(&gosdk.Implementation{
			Name:    name,
			Version: version,
		}, nil),
		tools: codetool.NewRegistry(eng),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	for _, t := range s.tools.List() {
		tool := t // capture for the closure below
		s.server.AddTool(&gosdk.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.Schema(),
		}, s.handlerFor(tool))
	}
}

// handlerFor adapts one codetool.Tool into the gosdk handler signature:
// unmarshal the raw JSON arguments into a generic map, execute, and wrap the
// result (or error) as a CallToolResult.
func (s *Server) handlerFor(tool codetool.Tool) func(context.Context, *gosdk.CallToolRequest) (*gosdk.CallToolResult, error) {
	return func(ctx context.Context, req *gosdk.CallToolRequest) (*gosdk.CallToolResult, error) {
		var args map[string]any
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return createErrorResponse(tool.Name(), fmt.Errorf("invalid arguments: %w", err))
			}
		}

		debug.LogMCP("tool=%s args=%v", tool.Name(), args)

		result, err := tool.Execute(ctx, args)
		if err != nil {
			return createErrorResponse(tool.Name(), err)
		}
		return createJSONResponse(result)
	}
}

// Run serves the registered tools over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	debug.SetMCPMode(true)
	return s.server.Run(ctx, &gosdk.StdioTransport{})
}
