// Package mcpserver is the inbound MCP adapter. It registers the operation
// registry's tools and the chembl:// resource templates with the mcp-go
// server and maps pipeline errors onto isError tool results.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/usecase"
)

// ServerName and ServerVersion identify this gateway in the MCP handshake.
const (
	ServerName    = "chembl-mcp-server"
	ServerVersion = "0.1.0"
)

// Server wires the registry and the upstream client into an MCP server
// instance.
type Server struct {
	mcp      *mcpGoServer.MCPServer
	registry *usecase.Registry
	client   *chembl.Client
	logger   *slog.Logger
}

// New builds the MCP server and registers every tool and resource template.
func New(registry *usecase.Registry, client *chembl.Client, logger *slog.Logger) (*Server, error) {
	s := &Server{
		mcp: mcpGoServer.NewMCPServer(
			ServerName,
			ServerVersion,
			mcpGoServer.WithToolCapabilities(false),
			mcpGoServer.WithResourceCapabilities(false, false),
		),
		registry: registry,
		client:   client,
		logger:   logger.With("component", "mcp_server"),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	s.registerResources()
	return s, nil
}

func (s *Server) registerTools() error {
	for _, op := range s.registry.Operations() {
		schema, err := json.Marshal(op.Tool.InputSchema)
		if err != nil {
			return fmt.Errorf("failed to encode input schema for %s: %w", op.Tool.Name, err)
		}
		tool := mcp.NewToolWithRawSchema(op.Tool.Name, op.Tool.Description, schema)
		s.mcp.AddTool(tool, s.toolHandler(op.Tool.Name))
	}
	s.logger.Info("Registered tools", slog.Int("count", len(s.registry.Operations())))
	return nil
}

// toolHandler adapts one registry operation to the mcp-go handler signature.
// Pipeline errors become isError results carrying the operation name and the
// underlying message; they are never surfaced as protocol-level faults.
func (s *Server) toolHandler(name string) mcpGoServer.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := s.registry.Execute(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", name, err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// ServeStdio runs the server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := mcpGoServer.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// NewSSEServer returns an SSE transport bound to this server.
func (s *Server) NewSSEServer(baseURL string) *mcpGoServer.SSEServer {
	return mcpGoServer.NewSSEServer(s.mcp, mcpGoServer.WithBaseURL(baseURL))
}
