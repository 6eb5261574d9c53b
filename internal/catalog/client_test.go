package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(srv.URL, "test-key", zerolog.Nop())
	return client, srv
}

func TestSearchParsesCandidates(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("expected api key header, got %q", got)
		}
		if r.URL.Path != "/public/search/products/SE" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "garden tools" {
			t.Errorf("unexpected query %q", q)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]string{
				{"id": "p1", "name": "Pruning Shears", "brand": "Fiskars", "imageUrl": "https://img/p1"},
				{"id": "p2", "name": "Garden Trowel"},
				{"name": "missing id, dropped"},
			},
		})
	})
	defer srv.Close()

	got, err := client.Search(context.Background(), "garden tools", "SE", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ProductID != "p1" || got[0].Brand != "Fiskars" {
		t.Errorf("unexpected first candidate: %+v", got[0])
	}
}

func TestSearchEmptyResultIsNotError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"products": []any{}})
	})
	defer srv.Close()

	got, err := client.Search(context.Background(), "nothing", "SE", 5)
	if err != nil {
		t.Fatalf("empty result should not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty slice, got %d", len(got))
	}
}

func TestSearchNormalizesProviderFailure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.Search(context.Background(), "x", "SE", 5)
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if perr.Op != "search" || perr.Status != http.StatusBadGateway {
		t.Errorf("unexpected error fields: %+v", perr)
	}
}

func TestOffersReturnsQuote(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public/offers/SE/p1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"productId":  "p1",
			"offerCount": 3,
			"priceRange": map[string]any{"min": 249.0, "max": 399.0, "currency": "SEK"},
		})
	})
	defer srv.Close()

	quote, err := client.Offers(context.Background(), "p1", "SE")
	if err != nil {
		t.Fatalf("Offers: %v", err)
	}
	if quote == nil {
		t.Fatal("expected a quote")
	}
	if quote.MinPrice != 249 || quote.MaxPrice != 399 || quote.Currency != "SEK" {
		t.Errorf("unexpected quote: %+v", quote)
	}
	if quote.Market != "SE" {
		t.Errorf("expected market SE, got %q", quote.Market)
	}
}

func TestOffersNoCurrentOffers(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"zero offer count", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"productId": "p1", "offerCount": 0})
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no such product", http.StatusNotFound)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, srv := newTestClient(tc.handler)
			defer srv.Close()

			quote, err := client.Offers(context.Background(), "p1", "SE")
			if err != nil {
				t.Fatalf("no offers should not error: %v", err)
			}
			if quote != nil {
				t.Errorf("expected nil quote, got %+v", quote)
			}
		})
	}
}

func TestOffersTransportFailure(t *testing.T) {
	srv := httptest.NewServer(nil)
	client := NewClient(srv.URL, "", zerolog.Nop())
	srv.Close() // connection refused from here on

	_, err := client.Offers(context.Background(), "p1", "SE")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if perr.Status != 0 {
		t.Errorf("transport failures should carry no status, got %d", perr.Status)
	}
}

func TestProductURL(t *testing.T) {
	if got := ProductURL("p1", "SE"); got != "https://www.pricerunner.se/p/p1" {
		t.Errorf("unexpected SE url %q", got)
	}
	if got := ProductURL("p1", "XX"); got != "https://www.pricerunner.com/p/p1" {
		t.Errorf("unknown market should fall back to .com, got %q", got)
	}
}
