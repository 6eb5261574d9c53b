package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Gateway is the catalog capability the MCP tools expose.
type Gateway interface {
	Search(ctx context.Context, query, market string, size int) ([]catalog.Candidate, error)
	Offers(ctx context.Context, productID, market string) (*catalog.PriceQuote, error)
}

// Server wraps an MCP server that exposes product catalog tools, so
// agent hosts can run searches and price lookups directly.
type Server struct {
	gateway       Gateway
	defaultMarket string
	searchSize    int
	mcp           *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(gateway Gateway, defaultMarket string, searchSize int) *Server {
	if searchSize <= 0 {
		searchSize = 8
	}
	s := &Server{
		gateway:       gateway,
		defaultMarket: defaultMarket,
		searchSize:    searchSize,
	}

	s.mcp = server.NewMCPServer(
		"secret-santa",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchProductsTool, s.handleSearchProducts)
	s.mcp.AddTool(getOffersTool, s.handleGetOffers)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
