package mcp

import (
	"errors"
	"strings"
	"testing"

	gosdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/lumenforge/codeintel/internal/engine"
)

func TestNewServer_RegistersAllTools(t *testing.T) {
	eng := engine.New(engine.Config{CacheBudgetBytes: 8 << 20})
	s := NewServer(eng, "codeintel-test", "0.0.0-test")
	require.NotNil(t, s.server)
	require.Len(t, s.tools.List(), 5)
}

func TestCreateJSONResponse_WrapsAsTextContent(t *testing.T) {
	res, err := createJSONResponse(map[string]any{"ok": true})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
}

func TestCreateErrorResponse_ReportsOperationAndMessage(t *testing.T) {
	res, err := createErrorResponse("parse", errors.New("file not found"))
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*gosdk.TextContent)
	require.True(t, ok)
	require.True(t, strings.Contains(text.Text, "file not found"))
	require.True(t, res.IsError)
}
