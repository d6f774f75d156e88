package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// newTestServer returns an empty MCP server for registering tools under test.
func newTestServer() *mcp.Server {
	return mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.1"}, nil)
}

// callTool calls a tool through an in-memory client session. The error is the
// call's own failure, e.g. arguments rejected by the input schema; tool
// failures come back as a result with IsError set.
func callTool(t *testing.T, srv *mcp.Server, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	ctx := context.Background()
	st, ct := mcp.NewInMemoryTransports()

	ss, err := srv.Connect(ctx, st, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.1"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	defer session.Close()

	return session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
}

// resultText returns the text of the first content item.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content, "no content in result")
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected *mcp.TextContent, got %T", result.Content[0])
	return tc.Text
}

// decodeResult requires a successful call and decodes its JSON text into out.
func decodeResult(t *testing.T, result *mcp.CallToolResult, err error, out any) {
	t.Helper()
	require.NoError(t, err)
	text := resultText(t, result)
	require.False(t, result.IsError, "unexpected IsError: %s", text)
	require.NoError(t, json.Unmarshal([]byte(text), out))
}
