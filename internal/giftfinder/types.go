package giftfinder

import "github.com/Jose-Sabater/secret-santa/internal/catalog"

// Role identifies who spoke a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message of the conversation. Assistant turns
// carry the products that were suggested in them, so later turns can
// avoid repeats without any server-side session state.
type ConversationTurn struct {
	Role     Role               `json:"role"`
	Content  string             `json:"content"`
	Products []SuggestedProduct `json:"products,omitempty"`
}

// SessionConstraints are supplied fresh on every call; the engine never
// derives them from history.
type SessionConstraints struct {
	Market          string
	MinPrice        *float64
	MaxPrice        *float64
	SuggestionCount int
}

// normalized returns a copy with defaults applied.
func (c SessionConstraints) normalized() SessionConstraints {
	if c.SuggestionCount <= 0 {
		c.SuggestionCount = 5
	}
	if c.Market == "" {
		c.Market = "SE"
	}
	return c
}

// ProductPrice is the price subset attached to a suggestion.
type ProductPrice struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// SuggestedProduct is one gift suggestion. Reasoning is mandatory:
// every suggestion explains why it fits the described person.
type SuggestedProduct struct {
	ProductID   string        `json:"productId"`
	Name        string        `json:"name"`
	Brand       string        `json:"brand,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	ExternalURL string        `json:"externalUrl"`
	Price       *ProductPrice `json:"price,omitempty"`
	Reasoning   string        `json:"reasoning"`
}

// Result is the terminal output of one chat turn. When NeedsMoreInfo
// is set the engine is asking a follow-up question and Products is
// empty.
type Result struct {
	Message       string             `json:"message"`
	Products      []SuggestedProduct `json:"products,omitempty"`
	NeedsMoreInfo bool               `json:"needsMoreInfo,omitempty"`
}

// pricedCandidate pairs a search hit with its confirmed quote. Only
// priced candidates survive into drafting.
type pricedCandidate struct {
	catalog.Candidate
	Quote catalog.PriceQuote
}

// withinBudget reports whether a quote range intersects the budget.
// An open bound means unbounded on that side.
func withinBudget(quote catalog.PriceQuote, min, max *float64) bool {
	if max != nil && quote.MinPrice > *max {
		return false
	}
	if min != nil && quote.MaxPrice < *min {
		return false
	}
	return true
}
