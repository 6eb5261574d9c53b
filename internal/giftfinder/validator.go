package giftfinder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
)

// extractJSON finds the JSON object in model output, tolerating
// markdown fences and stray prose around it.
func extractJSON(content string) string {
	jsonStr := content
	if idx := strings.Index(content, "{"); idx >= 0 {
		jsonStr = content[idx:]
	}
	if idx := strings.LastIndex(jsonStr, "}"); idx >= 0 {
		jsonStr = jsonStr[:idx+1]
	}
	return jsonStr
}

// validateSchema checks raw JSON against a schema and flattens the
// violations into one message.
func validateSchema(raw string, schema string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if !result.Valid() {
		var violations []string
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(violations, "; "))
	}
	return nil
}

// shapeDraft enforces the output contract on a model draft: schema
// conformance, budget re-check, de-duplication against prior turns,
// truncation to the requested count, and the needsMoreInfo invariant.
// Drafts that fail schema conformance are rejected, not repaired.
func (e *Engine) shapeDraft(content string, gathered []pricedCandidate, pc PromptContext) (*Result, error) {
	raw := extractJSON(content)
	if err := validateSchema(raw, draftSchema); err != nil {
		return nil, &InvalidResponseError{Reason: fmt.Sprintf("draft output: %v", err)}
	}

	var draft draftResponse
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, &InvalidResponseError{Reason: fmt.Sprintf("parsing draft output: %v", err)}
	}

	byID := make(map[string]pricedCandidate, len(gathered))
	for _, c := range gathered {
		byID[c.ProductID] = c
	}

	shown := pc.ShownIDs()
	seen := make(map[string]bool)
	var products []SuggestedProduct

	for _, p := range draft.Products {
		if len(products) >= pc.Constraints.SuggestionCount {
			break
		}

		candidate, ok := byID[p.ProductID]
		if !ok {
			// The model picked an id outside the gathered set; never
			// trust invented products.
			e.logger.Debug().Str("product_id", p.ProductID).Msg("dropping product not in gathered set")
			continue
		}
		if shown[p.ProductID] || seen[p.ProductID] {
			e.logger.Debug().Str("product_id", p.ProductID).Msg("dropping duplicate product")
			continue
		}
		if !withinBudget(candidate.Quote, pc.Constraints.MinPrice, pc.Constraints.MaxPrice) {
			e.logger.Debug().Str("product_id", p.ProductID).Msg("dropping product outside budget")
			continue
		}
		reasoning := strings.TrimSpace(p.Reasoning)
		if reasoning == "" {
			continue
		}

		seen[p.ProductID] = true
		products = append(products, SuggestedProduct{
			ProductID:   candidate.ProductID,
			Name:        candidate.Name,
			Brand:       candidate.Brand,
			ImageURL:    candidate.ImageURL,
			ExternalURL: catalog.ProductURL(candidate.ProductID, pc.Constraints.Market),
			Price: &ProductPrice{
				Min:      candidate.Quote.MinPrice,
				Max:      candidate.Quote.MaxPrice,
				Currency: candidate.Quote.Currency,
			},
			Reasoning: reasoning,
		})
	}

	// Asking and answering are mutually exclusive. The source schema
	// never enforced this, so enforce it here rather than reject.
	if draft.NeedsMoreInfo && len(products) > 0 {
		e.logger.Debug().Int("dropped", len(products)).Msg("needsMoreInfo set, dropping drafted products")
		products = nil
	}

	return &Result{
		Message:       draft.Message,
		Products:      products,
		NeedsMoreInfo: draft.NeedsMoreInfo,
	}, nil
}
