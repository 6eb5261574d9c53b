package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchProductsTool defines the search_products MCP tool.
var searchProductsTool = mcp.NewTool("search_products",
	mcp.WithDescription("Search the product catalog by keyword. Returns product ids, names and brands."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Keyword search query, e.g. 'wireless headphones'"),
	),
	mcp.WithString("market",
		mcp.Description("Two-letter market code (default from configuration)"),
	),
	mcp.WithNumber("size",
		mcp.Description("Maximum number of results to return"),
	),
)

// getOffersTool defines the get_offers MCP tool.
var getOffersTool = mcp.NewTool("get_offers",
	mcp.WithDescription("Get the current offer price range for a product."),
	mcp.WithString("product_id",
		mcp.Required(),
		mcp.Description("Catalog product id as returned by search_products"),
	),
	mcp.WithString("market",
		mcp.Description("Two-letter market code (default from configuration)"),
	),
)
