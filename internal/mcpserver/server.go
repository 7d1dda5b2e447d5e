// Package mcpserver exposes the summariser as a Model Context Protocol tool.
package mcpserver

import (
	"context"
	"errors"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/pipeline"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = logger_i.NewLogger("MCP")

type Summariser interface {
	Summarise(ctx context.Context, ref commonModels.FilingReference) pipeline.Summary
}

type Server struct {
	summariser Summariser
	server     *mcp.Server
}

func NewServer(summariser Summariser) (*Server, error) {
	if summariser == nil {
		return nil, errors.New("summariser is required")
	}

	s := &Server{
		summariser: summariser,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    config.MCPServerName,
			Version: config.MCPServerVersion,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
