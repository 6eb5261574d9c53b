package config

// QualityPreset describes the model to use for a given quality tier.
type QualityPreset struct {
	Model string
}

// qualityPresets maps each provider+quality combination to its model choice.
var qualityPresets = map[ProviderType]map[QualityTier]QualityPreset{
	ProviderOpenAI: {
		QualityLite:   {Model: "gpt-4o-mini"},
		QualityNormal: {Model: "gpt-4o"},
		QualityMax:    {Model: "gpt-4"},
	},
	ProviderAnthropic: {
		QualityLite:   {Model: "claude-3-5-haiku-latest"},
		QualityNormal: {Model: "claude-sonnet-4-20250514"},
		QualityMax:    {Model: "claude-opus-4-1-20250805"},
	},
	ProviderOllama: {
		QualityLite:   {Model: "llama3"},
		QualityNormal: {Model: "llama3"},
		QualityMax:    {Model: "llama3:70b"},
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:             ProviderOpenAI,
		Model:                "gpt-4o",
		Quality:              QualityNormal,
		Market:               "SE",
		NumSuggestions:       5,
		MaxQueries:           4,
		SearchConcurrency:    4,
		OfferConcurrency:     8,
		LLMRequestsPerMinute: 60,
		Catalog: CatalogConfig{
			BaseURL:    "https://api.pricerunner.com",
			APIKeyEnv:  "KLARNA_API_KEY",
			SearchSize: 8,
		},
		Server: ServerConfig{
			Port:               3001,
			AllowAll:           false,
			RequestTimeoutSecs: 90,
		},
	}
}

// GetPreset returns the quality preset for the given provider and tier.
// Returns the Normal OpenAI preset if the combination is not found.
func GetPreset(provider ProviderType, tier QualityTier) QualityPreset {
	if tiers, ok := qualityPresets[provider]; ok {
		if preset, ok := tiers[tier]; ok {
			return preset
		}
	}
	return qualityPresets[ProviderOpenAI][QualityNormal]
}
