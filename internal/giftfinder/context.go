package giftfinder

import (
	"fmt"
	"strings"
)

// PromptContext is the single bounded reasoning input assembled from a
// conversation. It is derived purely from its inputs: assembling the
// same history twice yields the same context, including the
// already-shown set.
type PromptContext struct {
	Constraints  SessionConstraints
	AlreadyShown []SuggestedProduct
	Transcript   []ConversationTurn
	UserMessage  string
}

// BuildContext flattens prior assistant turns' products into an
// explicit already-shown list and orders the transcript
// chronologically with the new utterance last.
func BuildContext(history []ConversationTurn, userMessage string, constraints SessionConstraints) PromptContext {
	pc := PromptContext{
		Constraints: constraints.normalized(),
		Transcript:  history,
		UserMessage: userMessage,
	}

	seen := make(map[string]bool)
	for _, turn := range history {
		if turn.Role != RoleAssistant {
			continue
		}
		for _, p := range turn.Products {
			if p.ProductID == "" || seen[p.ProductID] {
				continue
			}
			seen[p.ProductID] = true
			pc.AlreadyShown = append(pc.AlreadyShown, p)
		}
	}

	return pc
}

// ShownIDs returns the set of product ids already surfaced to the user.
func (pc PromptContext) ShownIDs() map[string]bool {
	ids := make(map[string]bool, len(pc.AlreadyShown))
	for _, p := range pc.AlreadyShown {
		ids[p.ProductID] = true
	}
	return ids
}

// Render produces the textual reasoning input: constraint directives
// first, then the transcript in order, then the new user message.
func (pc PromptContext) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[Market: %s]\n", pc.Constraints.Market)

	if pc.Constraints.MinPrice != nil || pc.Constraints.MaxPrice != nil {
		var priceRange string
		switch {
		case pc.Constraints.MinPrice != nil && pc.Constraints.MaxPrice != nil:
			priceRange = fmt.Sprintf("%g-%g", *pc.Constraints.MinPrice, *pc.Constraints.MaxPrice)
		case pc.Constraints.MinPrice != nil:
			priceRange = fmt.Sprintf("minimum %g", *pc.Constraints.MinPrice)
		default:
			priceRange = fmt.Sprintf("maximum %g", *pc.Constraints.MaxPrice)
		}
		fmt.Fprintf(&b, "[Budget constraint: %s. Stay within this range.]\n", priceRange)
	}

	fmt.Fprintf(&b, "[Provide %d gift suggestions.]\n", pc.Constraints.SuggestionCount)

	if len(pc.AlreadyShown) > 0 {
		names := make([]string, 0, len(pc.AlreadyShown))
		for _, p := range pc.AlreadyShown {
			if p.Price != nil {
				names = append(names, fmt.Sprintf("%s (%g-%g %s)", p.Name, p.Price.Min, p.Price.Max, p.Price.Currency))
			} else {
				names = append(names, p.Name)
			}
		}
		fmt.Fprintf(&b, "[Already suggested, do not repeat: %s]\n", strings.Join(names, ", "))
	}

	if len(pc.Transcript) > 0 {
		b.WriteString("\nPrevious conversation:\n")
		for _, turn := range pc.Transcript {
			speaker := "User"
			if turn.Role == RoleAssistant {
				speaker = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, turn.Content)
		}
	}

	fmt.Fprintf(&b, "\nUser: %s", pc.UserMessage)

	return b.String()
}
