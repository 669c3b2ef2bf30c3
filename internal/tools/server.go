package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spigell/offer-matcher/internal/logger"
	"go.uber.org/zap"
)

const ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION

// Server exposes a Registry as an MCP tool server over stdio.
type Server struct {
	mcp    *server.MCPServer
	name   string
	logger *zap.Logger
}

// NewServer publishes every registered tool with its descriptor schema.
// Each call is forwarded to the registry, which turns failures into error results.
func NewServer(registry *Registry, name, version string, l *zap.Logger) (*Server, error) {
	l = logger.OrNop(l)

	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))

	for _, d := range registry.List() {
		schema, err := json.Marshal(d.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("encoding input schema of %s: %w", d.Name, err)
		}
		s.AddTool(mcp.NewToolWithRawSchema(d.Name, d.Description, schema), forward(registry, d.Name))
	}

	return &Server{mcp: s, name: name, logger: l}, nil
}

func forward(registry *Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := registry.Call(ctx, name, req.GetArguments())
		if res.IsError {
			return mcp.NewToolResultError(res.Text), nil
		}
		return mcp.NewToolResultText(res.Text), nil
	}
}

// Serve reads line-delimited requests from r and writes responses to w until EOF or ctx is done.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	s.logger.Info("tool server started", zap.String("server", s.name))

	if err := stdio.Listen(ctx, r, w); err != nil {
		return err
	}

	s.logger.Info("tool server input closed")
	return nil
}
