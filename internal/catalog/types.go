package catalog

// Candidate is a product returned by a catalog search. It carries no
// price; a candidate without a current quote is never shown to users.
type Candidate struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Brand     string `json:"brand,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// PriceQuote is the current offer range for a product in one market.
type PriceQuote struct {
	ProductID string  `json:"productId"`
	Market    string  `json:"market"`
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
	Currency  string  `json:"currency"`
}

// marketDomains maps market codes to the provider's storefront domain,
// used when building user-facing product links.
var marketDomains = map[string]string{
	"SE": "www.pricerunner.se",
	"DK": "www.pricerunner.dk",
	"UK": "www.pricerunner.com",
}

// ProductURL builds the user-facing link for a product in a market.
// Links are always derived from the product id, never taken from model
// output.
func ProductURL(productID, market string) string {
	domain, ok := marketDomains[market]
	if !ok {
		domain = "www.pricerunner.com"
	}
	return "https://" + domain + "/p/" + productID
}
