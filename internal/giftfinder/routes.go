package giftfinder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Recommender is what the HTTP layer needs from the engine. Tests
// substitute a stub.
type Recommender interface {
	Recommend(ctx context.Context, message string, history []ConversationTurn, constraints SessionConstraints) (*Result, error)
}

// RouteConfig carries the handler defaults.
type RouteConfig struct {
	DefaultMarket  string
	DefaultCount   int
	RequestTimeout time.Duration
}

// RegisterRoutes mounts the chat endpoints.
func RegisterRoutes(r chi.Router, rec Recommender, cfg RouteConfig) {
	r.Post("/api/chat", handleChat(rec, cfg))
	r.Get("/api/chat/ws", handleChatWS(rec, cfg))
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Message        string             `json:"message"`
	History        []ConversationTurn `json:"history"`
	Market         string             `json:"market"`
	MinPrice       *float64           `json:"minPrice"`
	MaxPrice       *float64           `json:"maxPrice"`
	NumSuggestions int                `json:"numSuggestions"`
}

// Validate checks the request shape before any orchestration happens.
func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.Length(1, 4000)),
		validation.Field(&r.Market, validation.Length(2, 2)),
		validation.Field(&r.MinPrice, validation.Min(0.0)),
		validation.Field(&r.MaxPrice, validation.Min(0.0)),
		validation.Field(&r.NumSuggestions, validation.Min(0), validation.Max(20)),
	)
}

func (r ChatRequest) constraints(cfg RouteConfig) SessionConstraints {
	market := r.Market
	if market == "" {
		market = cfg.DefaultMarket
	}
	count := r.NumSuggestions
	if count == 0 {
		count = cfg.DefaultCount
	}
	return SessionConstraints{
		Market:          market,
		MinPrice:        r.MinPrice,
		MaxPrice:        r.MaxPrice,
		SuggestionCount: count,
	}
}

func handleChat(rec Recommender, cfg RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request", err)
			return
		}

		ctx := r.Context()
		if cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
			defer cancel()
		}

		result, err := rec.Recommend(ctx, req.Message, req.History, req.constraints(cfg))
		if err != nil {
			writeRecommendError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func writeRecommendError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	var terr *TimeoutError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, ErrProviderUnavailable):
		writeError(w, http.StatusBadGateway, "catalog provider unavailable", err)
	case errors.As(err, &terr):
		writeError(w, http.StatusGatewayTimeout, "request timed out", err)
	default:
		writeError(w, http.StatusInternalServerError, "failed to process chat", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   message,
		"details": err.Error(),
	})
}
