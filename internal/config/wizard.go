package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// knownMarkets are the markets the wizard offers; any two-letter code
// can still be set by editing the config file.
var knownMarkets = []string{"SE", "DK", "NO", "FI", "DE", "UK"}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .santa.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to santa! Let's configure your gift finder.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "anthropic", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	// 2. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   — fast & cheap (haiku / gpt-4o-mini)",
			"normal — balanced (sonnet / gpt-4o)",
			"max    — highest quality (opus / gpt-4)",
		},
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}
	quality := tiers[qualityIdx]

	preset := GetPreset(provider, quality)

	// 3. Default market.
	marketPrompt := promptui.Select{
		Label: "Default market",
		Items: knownMarkets,
	}
	_, market, err := marketPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("market selection: %w", err)
	}

	// 4. Suggestion count.
	countPrompt := promptui.Prompt{
		Label:   "Gift suggestions per response",
		Default: "5",
		Validate: func(s string) error {
			n := 0
			if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n); err != nil || n < 1 {
				return fmt.Errorf("enter a positive number")
			}
			return nil
		},
	}
	countStr, err := countPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("suggestion count: %w", err)
	}
	var count int
	fmt.Sscanf(strings.TrimSpace(countStr), "%d", &count)

	// Build the config on top of defaults.
	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = preset.Model
	cfg.Quality = quality
	cfg.Market = market
	cfg.NumSuggestions = count

	// Check for API keys.
	if envVar := APIKeyEnvVar(provider); envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running santa serve.\n", envVar)
		}
	}
	if os.Getenv(cfg.Catalog.APIKeyEnv) == "" {
		fmt.Printf("Note: Set %s in your environment for catalog access.\n", cfg.Catalog.APIKeyEnv)
	}

	// Save to .santa.yml.
	configPath := ".santa.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
