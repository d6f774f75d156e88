//go:build e2e

// Tests for: e2e - helpers for E2E tests against a real CloudStack API.

package e2e_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"github.com/zeropsio/fizzcheck/internal/auth"
	"github.com/zeropsio/fizzcheck/internal/config"
	"github.com/zeropsio/fizzcheck/internal/platform"
	"github.com/zeropsio/fizzcheck/internal/server"
	"github.com/zeropsio/fizzcheck/internal/smoke"
)

// e2eHarness provides a real API client and MCP server for E2E tests.
type e2eHarness struct {
	client   *platform.CloudStackClient
	authInfo *auth.Info
	srv      *server.Server
}

// newHarness creates an E2E harness from the environment config.
// Skips when no API credentials are configured.
func newHarness(t *testing.T) *e2eHarness {
	t.Helper()

	cfg, err := config.Load(config.ResolvePath(""))
	if err != nil {
		t.Skipf("no API config: %v", err)
	}
	creds, err := auth.ResolveCredentials(cfg.API)
	if err != nil {
		t.Skipf("no API credentials: %v", err)
	}

	client, err := platform.NewCloudStackClient(creds.APIURL, creds.APIKey, creds.SecretKey)
	require.NoError(t, err, "create client")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	authInfo, err := auth.Resolve(ctx, client, client.Endpoint())
	require.NoError(t, err, "auth resolve")

	return &e2eHarness{
		client:   client,
		authInfo: authInfo,
		srv:      server.New(client, client, authInfo, smoke.DefaultTestData(), nil),
	}
}

// e2eSession wraps a connected MCP client session for E2E tool calls.
type e2eSession struct {
	t       *testing.T
	session *mcp.ClientSession
}

// newSession creates an MCP client session connected to the E2E server.
func newSession(t *testing.T, srv *server.Server) *e2eSession {
	t.Helper()
	ctx := context.Background()
	st, ct := mcp.NewInMemoryTransports()
	_, err := srv.MCPServer().Connect(ctx, st, nil)
	require.NoError(t, err)
	client := mcp.NewClient(&mcp.Implementation{Name: "e2e-test", Version: "0.1"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return &e2eSession{t: t, session: session}
}

// mustCall calls a tool that must succeed and decodes its JSON result into out.
func (s *e2eSession) mustCall(name string, args map[string]any, out any) {
	s.t.Helper()
	result, err := s.session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(s.t, err, "call %s", name)
	require.NotEmpty(s.t, result.Content, "no content in %s result", name)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(s.t, ok, "expected TextContent, got %T", result.Content[0])
	require.False(s.t, result.IsError, "%s returned error: %s", name, tc.Text)
	require.NoError(s.t, json.Unmarshal([]byte(tc.Text), out))
}
