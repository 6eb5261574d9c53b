package giftfinder

// planSchema validates the planning step's JSON output.
const planSchema = `{
  "type": "object",
  "required": ["queries"],
  "properties": {
    "queries": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "needsMoreInfo": {"type": "boolean"},
    "question": {"type": "string"}
  }
}`

// draftSchema validates the drafting step's JSON output before any
// shaping happens. Reasoning is mandatory per product.
const draftSchema = `{
  "type": "object",
  "required": ["message"],
  "properties": {
    "message": {"type": "string", "minLength": 1},
    "needsMoreInfo": {"type": "boolean"},
    "products": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["productId", "reasoning"],
        "properties": {
          "productId": {"type": "string", "minLength": 1},
          "reasoning": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// planResponse is the parsed planning output.
type planResponse struct {
	Queries       []string `json:"queries"`
	NeedsMoreInfo bool     `json:"needsMoreInfo"`
	Question      string   `json:"question"`
}

// draftResponse is the parsed drafting output. Product details beyond
// the id are always joined back from gathered catalog data.
type draftResponse struct {
	Message       string `json:"message"`
	NeedsMoreInfo bool   `json:"needsMoreInfo"`
	Products      []struct {
		ProductID string `json:"productId"`
		Reasoning string `json:"reasoning"`
	} `json:"products"`
}
