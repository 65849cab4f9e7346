package mcp

import (
	"encoding/json"
	"fmt"

	gosdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// createJSONResponse marshals data and wraps it as the tool's text content.
func createJSONResponse(data any) (*gosdk.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return &gosdk.CallToolResult{
		Content: []gosdk.Content{
			&gosdk.TextContent{Text: string(content)},
		},
	}, nil
}

// createErrorResponse reports a tool failure as a JSON payload rather than a
// transport-level error, so the caller sees a structured reason instead of a
// bare RPC fault. CRITICAL: IsError must be set per the MCP SDK specification
// — otherwise the LLM would not be able to see that an error occurred and
// self-correct.
func createErrorResponse(operation string, err error) (*gosdk.CallToolResult, error) {
	res, marshalErr := createJSONResponse(map[string]any{
		"success":   false,
		"operation": operation,
		"error":     err.Error(),
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	res.IsError = true
	return res, nil
}
