package config

// QualityTier controls the model selection and trade-off between speed/cost and quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
)

// CatalogConfig holds settings for the external product catalog API.
type CatalogConfig struct {
	BaseURL   string `yaml:"base_url" koanf:"base_url"`
	APIKeyEnv string `yaml:"api_key_env" koanf:"api_key_env"`
	// SearchSize is how many candidates each catalog search returns.
	SearchSize int `yaml:"search_size" koanf:"search_size"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	// RequestTimeoutSecs bounds one chat turn end to end.
	RequestTimeoutSecs int `yaml:"request_timeout_secs" koanf:"request_timeout_secs"`
}

// Config is the top-level configuration, corresponding to .santa.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
	Quality  QualityTier  `yaml:"quality" koanf:"quality"`

	// Market is the default ISO market code for search and pricing.
	Market string `yaml:"market" koanf:"market"`
	// NumSuggestions is the default number of gifts per response.
	NumSuggestions int `yaml:"num_suggestions" koanf:"num_suggestions"`
	// MaxQueries caps how many catalog searches one turn may plan.
	MaxQueries int `yaml:"max_queries" koanf:"max_queries"`
	// SearchConcurrency and OfferConcurrency bound parallel catalog calls.
	SearchConcurrency int `yaml:"search_concurrency" koanf:"search_concurrency"`
	OfferConcurrency  int `yaml:"offer_concurrency" koanf:"offer_concurrency"`
	// LLMRequestsPerMinute throttles provider calls (0 disables).
	LLMRequestsPerMinute int `yaml:"llm_rpm" koanf:"llm_rpm"`

	Catalog CatalogConfig `yaml:"catalog" koanf:"catalog"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
}
