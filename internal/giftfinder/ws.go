package giftfinder

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type           string   `json:"type"` // "message" or "reset"
	Content        string   `json:"content"`
	Market         string   `json:"market,omitempty"`
	MinPrice       *float64 `json:"minPrice,omitempty"`
	MaxPrice       *float64 `json:"maxPrice,omitempty"`
	NumSuggestions int      `json:"numSuggestions,omitempty"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type          string             `json:"type"` // "response" or "error"
	SessionID     string             `json:"session_id"`
	Content       string             `json:"content"`
	Products      []SuggestedProduct `json:"products,omitempty"`
	NeedsMoreInfo bool               `json:"needsMoreInfo,omitempty"`
}

// handleChatWS runs a conversational session over a single WebSocket
// connection. The transcript lives only as long as the connection; a
// "reset" frame starts over.
func handleChatWS(rec Recommender, cfg RouteConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("giftfinder: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		sessionID := uuid.NewString()
		var history []ConversationTurn

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("giftfinder: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWSError(conn, sessionID, "invalid message format")
				continue
			}

			switch req.Type {
			case "reset":
				sessionID = uuid.NewString()
				history = nil
				sendWSResponse(conn, wsResponse{Type: "response", SessionID: sessionID, Content: "Session reset."})
			case "message":
				if req.Content == "" {
					sendWSError(conn, sessionID, "content is required")
					continue
				}
				history = handleWSMessage(conn, r, rec, cfg, sessionID, history, req)
			default:
				sendWSError(conn, sessionID, "unknown message type: "+req.Type)
			}
		}
	}
}

func handleWSMessage(conn *websocket.Conn, r *http.Request, rec Recommender, cfg RouteConfig, sessionID string, history []ConversationTurn, req wsRequest) []ConversationTurn {
	ctx := r.Context()
	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}

	chatReq := ChatRequest{
		Message:        req.Content,
		Market:         req.Market,
		MinPrice:       req.MinPrice,
		MaxPrice:       req.MaxPrice,
		NumSuggestions: req.NumSuggestions,
	}
	if err := chatReq.Validate(); err != nil {
		sendWSError(conn, sessionID, "invalid request: "+err.Error())
		return history
	}

	result, err := rec.Recommend(ctx, req.Content, history, chatReq.constraints(cfg))
	if err != nil {
		sendWSError(conn, sessionID, recommendErrorMessage(err))
		return history
	}

	history = append(history,
		ConversationTurn{Role: RoleUser, Content: req.Content},
		ConversationTurn{Role: RoleAssistant, Content: result.Message, Products: result.Products},
	)

	sendWSResponse(conn, wsResponse{
		Type:          "response",
		SessionID:     sessionID,
		Content:       result.Message,
		Products:      result.Products,
		NeedsMoreInfo: result.NeedsMoreInfo,
	})
	return history
}

func recommendErrorMessage(err error) string {
	var terr *TimeoutError
	switch {
	case errors.Is(err, ErrProviderUnavailable):
		return "catalog provider unavailable: " + err.Error()
	case errors.As(err, &terr):
		return "request timed out"
	default:
		return "processing failed: " + err.Error()
	}
}

func sendWSResponse(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("giftfinder: websocket write: %v", err)
	}
}

func sendWSError(conn *websocket.Conn, sessionID, message string) {
	resp := wsResponse{
		Type:      "error",
		SessionID: sessionID,
		Content:   message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("giftfinder: websocket write error: %v", err)
	}
}
