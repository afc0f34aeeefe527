package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	serverName    = "naverscrap"
	serverVersion = "1.0.0"
)

// Options carries the configured run parameters into the tools.
type Options struct {
	Platform       string
	PageSize       int
	MaxResults     int
	Exclude        []string
	OutputPathHint string
	Logger         *zap.Logger
}

func newServer(opts Options) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	registerTools(s, &tools{opts: opts})
	return s
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(opts Options) error {
	return server.ServeStdio(newServer(opts))
}
