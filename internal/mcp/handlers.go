package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
)

// handleSearchProducts runs a keyword search against the catalog.
func (s *Server) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	market := request.GetString("market", s.defaultMarket)
	size := request.GetInt("size", s.searchSize)
	if size <= 0 {
		size = s.searchSize
	}

	candidates, err := s.gateway.Search(ctx, query, market, size)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(candidates) == 0 {
		return mcp.NewToolResultText("No products found. Try a broader query."), nil
	}

	return mcp.NewToolResultText(formatCandidates(candidates, market)), nil
}

// handleGetOffers looks up the current price range for a product.
func (s *Server) handleGetOffers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	productID, err := request.RequireString("product_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: product_id"), nil
	}

	market := request.GetString("market", s.defaultMarket)

	quote, err := s.gateway.Offers(ctx, productID, market)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("offer lookup failed: %v", err)), nil
	}

	if quote == nil {
		return mcp.NewToolResultText(fmt.Sprintf("No current offers for product %s in %s.", productID, market)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Product %s sells for %g-%g %s.\nLink: %s",
		productID, quote.MinPrice, quote.MaxPrice, quote.Currency,
		catalog.ProductURL(productID, market),
	)), nil
}

// formatCandidates converts search hits into a text listing for agent
// consumption.
func formatCandidates(candidates []catalog.Candidate, market string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d product(s):\n", len(candidates)))

	for i, c := range candidates {
		sb.WriteString(fmt.Sprintf("\n--- Product %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("ID: %s\n", c.ProductID))
		sb.WriteString(fmt.Sprintf("Name: %s\n", c.Name))
		if c.Brand != "" {
			sb.WriteString(fmt.Sprintf("Brand: %s\n", c.Brand))
		}
		sb.WriteString(fmt.Sprintf("Link: %s\n", catalog.ProductURL(c.ProductID, market)))
	}

	return sb.String()
}
