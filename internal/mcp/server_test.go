package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
)

// mockGateway implements Gateway for testing.
type mockGateway struct {
	candidates []catalog.Candidate
	quote      *catalog.PriceQuote
	searchErr  error
	offersErr  error

	gotQuery  string
	gotMarket string
	gotSize   int
	gotID     string
}

func (m *mockGateway) Search(_ context.Context, query, market string, size int) ([]catalog.Candidate, error) {
	m.gotQuery, m.gotMarket, m.gotSize = query, market, size
	return m.candidates, m.searchErr
}

func (m *mockGateway) Offers(_ context.Context, productID, market string) (*catalog.PriceQuote, error) {
	m.gotID, m.gotMarket = productID, market
	return m.quote, m.offersErr
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"search_products", searchProductsTool, "search_products"},
		{"get_offers", getOffersTool, "get_offers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	gw := &mockGateway{}
	srv := NewServer(gw, "SE", 8)

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.gateway != gw {
		t.Error("gateway not set correctly")
	}
	if srv.defaultMarket != "SE" {
		t.Errorf("defaultMarket = %q, want SE", srv.defaultMarket)
	}
}

func TestHandleSearchProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("basic search", func(t *testing.T) {
		gw := &mockGateway{candidates: []catalog.Candidate{
			{ProductID: "p1", Name: "Chess Set", Brand: "Cayro"},
		}}
		srv := NewServer(gw, "SE", 8)

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "chess"}

		result, err := srv.handleSearchProducts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}

		text := toolText(t, result)
		if !strings.Contains(text, "p1") || !strings.Contains(text, "Chess Set") {
			t.Errorf("result missing product details:\n%s", text)
		}
		if gw.gotMarket != "SE" {
			t.Errorf("expected default market SE, got %q", gw.gotMarket)
		}
		if gw.gotSize != 8 {
			t.Errorf("expected default size 8, got %d", gw.gotSize)
		}
	})

	t.Run("market override", func(t *testing.T) {
		gw := &mockGateway{}
		srv := NewServer(gw, "SE", 8)

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "chess", "market": "DK", "size": float64(3)}

		if _, err := srv.handleSearchProducts(ctx, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gw.gotMarket != "DK" {
			t.Errorf("market override not applied: %q", gw.gotMarket)
		}
		if gw.gotSize != 3 {
			t.Errorf("size override not applied: %d", gw.gotSize)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		srv := NewServer(&mockGateway{}, "SE", 8)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleSearchProducts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})

	t.Run("no results", func(t *testing.T) {
		srv := NewServer(&mockGateway{}, "SE", 8)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "unobtainium"}

		result, err := srv.handleSearchProducts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("empty results should not be an error")
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		srv := NewServer(&mockGateway{searchErr: errors.New("503")}, "SE", 8)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "chess"}

		result, err := srv.handleSearchProducts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected tool error on backend failure")
		}
	})
}

func TestHandleGetOffers(t *testing.T) {
	ctx := context.Background()

	t.Run("with offers", func(t *testing.T) {
		gw := &mockGateway{quote: &catalog.PriceQuote{MinPrice: 199, MaxPrice: 249, Currency: "SEK"}}
		srv := NewServer(gw, "SE", 8)

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"product_id": "p1"}

		result, err := srv.handleGetOffers(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}

		text := toolText(t, result)
		if !strings.Contains(text, "199") || !strings.Contains(text, "SEK") {
			t.Errorf("result missing price range:\n%s", text)
		}
	})

	t.Run("no offers", func(t *testing.T) {
		srv := NewServer(&mockGateway{}, "SE", 8)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"product_id": "p1"}

		result, err := srv.handleGetOffers(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("missing offers should not be a tool error")
		}
	})

	t.Run("missing product_id", func(t *testing.T) {
		srv := NewServer(&mockGateway{}, "SE", 8)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGetOffers(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing product_id")
		}
	})
}
