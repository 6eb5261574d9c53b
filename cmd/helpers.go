package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
	"github.com/Jose-Sabater/secret-santa/internal/config"
	"github.com/Jose-Sabater/secret-santa/internal/giftfinder"
	"github.com/Jose-Sabater/secret-santa/internal/llm"
)

// newLogger builds the process-wide logger. Everything goes to stderr;
// stdout is reserved for command output and MCP protocol traffic.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig loads .env, then the config file, then validates.
func loadConfig() (*config.Config, error) {
	// Missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `santa init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createLLMProviderFromConfig creates an LLM provider based on config
// settings, wrapped with rate limiting when configured.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	model := cfg.Model
	if model == "" {
		model = config.GetPreset(cfg.Provider, cfg.Quality).Model
	}
	provider, err := llm.NewProvider(string(cfg.Provider), model)
	if err != nil {
		return nil, err
	}
	if cfg.LLMRequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.LLMRequestsPerMinute)
	}
	return provider, nil
}

// newCatalogClient creates the catalog client from config, resolving
// the API key from the configured environment variable.
func newCatalogClient(cfg *config.Config, logger zerolog.Logger) (*catalog.Client, error) {
	apiKey := os.Getenv(cfg.Catalog.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is required for catalog access", cfg.Catalog.APIKeyEnv)
	}
	return catalog.NewClient(cfg.Catalog.BaseURL, apiKey, logger), nil
}

// newEngine wires the recommendation engine from config.
func newEngine(cfg *config.Config, logger zerolog.Logger) (*giftfinder.Engine, *catalog.Client, error) {
	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	client, err := newCatalogClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	model := cfg.Model
	if model == "" {
		model = config.GetPreset(cfg.Provider, cfg.Quality).Model
	}

	engine := giftfinder.NewEngine(provider, client, giftfinder.Options{
		Model:             model,
		MaxQueries:        cfg.MaxQueries,
		SearchSize:        cfg.Catalog.SearchSize,
		SearchConcurrency: cfg.SearchConcurrency,
		OfferConcurrency:  cfg.OfferConcurrency,
	}, logger)

	return engine, client, nil
}
