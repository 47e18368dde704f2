// Package mcp exposes the item browser as Model Context Protocol tools.
// Every tool call opens its own browse-mode dialog.
package mcp

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ddbrown30/item-browser/internal/browser"
)

const serverName = "item-browser"

// Server wraps the MCP server and its tool bindings.
type Server struct {
	mcpServer *sdk.Server
}

// New registers the tools against deps.
func New(deps browser.Deps, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := sdk.NewServer(&sdk.Implementation{Name: serverName, Version: version}, nil)
	sdk.AddTool(s, ListSourcesTool(), ListSourcesHandler(deps))
	sdk.AddTool(s, BrowseItemsTool(), BrowseItemsHandler(deps))
	sdk.AddTool(s, GetItemTool(), GetItemHandler(deps.Host))
	return &Server{mcpServer: s}
}

// Run serves until the transport closes or ctx ends.
func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// ServeStdio serves over stdin and stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Run(ctx, &sdk.StdioTransport{})
}
