package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeropsio/fizzcheck/internal/auth"
	"github.com/zeropsio/fizzcheck/internal/logger"
	"github.com/zeropsio/fizzcheck/internal/platform"
	"github.com/zeropsio/fizzcheck/internal/smoke"
	"github.com/zeropsio/fizzcheck/internal/tools"
)

// Version, Commit, Built are set by ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Built   = "unknown"
)

// Server wraps the MCP server with the fizzBuzz tools.
type Server struct {
	server   *mcp.Server
	client   platform.Client
	counter  platform.InstanceCounter
	authInfo *auth.Info
	data     smoke.TestData
	log      *slog.Logger
}

// New creates a fizzcheck MCP server with all tools registered.
// authInfo may be nil when credentials were not validated.
func New(client platform.Client, counter platform.InstanceCounter, authInfo *auth.Info, data smoke.TestData, log *slog.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	srv := mcp.NewServer(
		&mcp.Implementation{Name: "fizzcheck", Version: Version},
		&mcp.ServerOptions{Instructions: BuildInstructions(authInfo)},
	)

	s := &Server{
		server:   srv,
		client:   client,
		counter:  counter,
		authInfo: authInfo,
		data:     data,
		log:      log,
	}

	s.registerTools()
	s.registerResources()
	return s
}

func (s *Server) registerTools() {
	// Pure
	tools.RegisterVerify(s.server)

	// API-backed
	tools.RegisterCheck(s.server, s.client, s.counter)
	tools.RegisterSmoke(s.server, s.client, s.counter, s.data, s.log)
}

// Run starts the MCP server on stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server listening on stdio", slog.String("op", "server.Run"), slog.String("version", Version))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server (for testing).
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
