package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the direct catalog endpoints. These bypass the
// gift finder entirely; the UI uses them for plain product lookups.
func RegisterRoutes(r chi.Router, client *Client, defaultMarket string) {
	r.Get("/api/search", handleSearch(client, defaultMarket))
	r.Get("/api/offers", handleOffers(client, defaultMarket))
}

func handleSearch(client *Client, defaultMarket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, `{"error":"query parameter 'q' is required"}`, http.StatusBadRequest)
			return
		}

		market := r.URL.Query().Get("market")
		if market == "" {
			market = defaultMarket
		}

		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		if size <= 0 {
			size = 10
		}

		results, err := client.Search(r.Context(), query, market, size)
		if err != nil {
			writeProviderError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(results)
	}
}

func handleOffers(client *Client, defaultMarket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.URL.Query().Get("productId")
		if productID == "" {
			http.Error(w, `{"error":"query parameter 'productId' is required"}`, http.StatusBadRequest)
			return
		}

		market := r.URL.Query().Get("market")
		if market == "" {
			market = defaultMarket
		}

		quote, err := client.Offers(r.Context(), productID, market)
		if err != nil {
			writeProviderError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		// quote is null when the product has no current offers.
		json.NewEncoder(w).Encode(quote)
	}
}

func writeProviderError(w http.ResponseWriter, err error) {
	var perr *ProviderError
	if errors.As(err, &perr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "catalog provider unavailable",
			"details": perr.Error(),
		})
		return
	}
	http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
}
