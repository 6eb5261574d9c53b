package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Client is a typed pass-through to the external product search/price
// provider. No caching and no retries live here; the client's only job
// is faithful calls with normalized errors.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a catalog client for the given provider base URL.
func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

type searchResponse struct {
	Products []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Brand    string `json:"brand"`
		ImageURL string `json:"imageUrl"`
	} `json:"products"`
}

// Search queries the catalog for products matching the query in the
// given market. A provider that finds nothing returns an empty slice,
// not an error.
func (c *Client) Search(ctx context.Context, query, market string, size int) ([]Candidate, error) {
	if size < 1 {
		size = 10
	}

	u := fmt.Sprintf("%s/public/search/products/%s?q=%s&size=%d",
		c.baseURL, url.PathEscape(market), url.QueryEscape(query), size)

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, &ProviderError{Op: "search", Err: err}
	}
	if status != http.StatusOK {
		return nil, &ProviderError{Op: "search", Status: status, Err: errors.New(snippet(body))}
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ProviderError{Op: "search", Err: fmt.Errorf("decoding response: %w", err)}
	}

	candidates := make([]Candidate, 0, len(resp.Products))
	for _, p := range resp.Products {
		if p.ID == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			ProductID: p.ID,
			Name:      p.Name,
			Brand:     p.Brand,
			ImageURL:  p.ImageURL,
		})
	}

	c.logger.Debug().Str("query", query).Str("market", market).Int("hits", len(candidates)).Msg("catalog search")
	return candidates, nil
}

type offersResponse struct {
	ProductID  string `json:"productId"`
	OfferCount int    `json:"offerCount"`
	PriceRange struct {
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
		Currency string  `json:"currency"`
	} `json:"priceRange"`
}

// Offers fetches the current price range for a product. A product with
// no current offers yields (nil, nil): unsellable right now, not an
// error and not worth retrying.
func (c *Client) Offers(ctx context.Context, productID, market string) (*PriceQuote, error) {
	u := fmt.Sprintf("%s/public/offers/%s/%s",
		c.baseURL, url.PathEscape(market), url.PathEscape(productID))

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, &ProviderError{Op: "offers", Err: err}
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, &ProviderError{Op: "offers", Status: status, Err: errors.New(snippet(body))}
	}

	var resp offersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ProviderError{Op: "offers", Err: fmt.Errorf("decoding response: %w", err)}
	}

	if resp.OfferCount == 0 {
		c.logger.Debug().Str("product_id", productID).Msg("no current offers")
		return nil, nil
	}

	return &PriceQuote{
		ProductID: productID,
		Market:    market,
		MinPrice:  resp.PriceRange.Min,
		MaxPrice:  resp.PriceRange.Max,
		Currency:  resp.PriceRange.Currency,
	}, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// snippet trims provider error bodies before they end up in logs.
func snippet(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
