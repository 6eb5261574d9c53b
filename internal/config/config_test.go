package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.Quality != QualityNormal {
		t.Errorf("expected default quality %q, got %q", QualityNormal, cfg.Quality)
	}
	if cfg.Market != "SE" {
		t.Errorf("expected default market %q, got %q", "SE", cfg.Market)
	}
	if cfg.NumSuggestions != 5 {
		t.Errorf("expected default num_suggestions 5, got %d", cfg.NumSuggestions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.santa.yml")

	original := DefaultConfig()
	original.Provider = ProviderAnthropic
	original.Model = "claude-sonnet-4-20250514"
	original.Quality = QualityMax
	original.Market = "DK"
	original.NumSuggestions = 3
	original.Server.Port = 8080

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.Market != original.Market {
		t.Errorf("market: got %q, want %q", loaded.Market, original.Market)
	}
	if loaded.NumSuggestions != original.NumSuggestions {
		t.Errorf("num_suggestions: got %d, want %d", loaded.NumSuggestions, original.NumSuggestions)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("server.port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	t.Setenv("SANTA_MARKET", "NO")
	t.Setenv("SANTA_PROVIDER", "ollama")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Market != "NO" {
		t.Errorf("expected env override market %q, got %q", "NO", cfg.Market)
	}
	if cfg.Provider != ProviderOllama {
		t.Errorf("expected env override provider %q, got %q", ProviderOllama, cfg.Provider)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty provider", func(c *Config) { c.Provider = "" }},
		{"unknown provider", func(c *Config) { c.Provider = "grok" }},
		{"empty model", func(c *Config) { c.Model = "" }},
		{"bad quality", func(c *Config) { c.Quality = "ultra" }},
		{"bad market", func(c *Config) { c.Market = "SWE" }},
		{"zero suggestions", func(c *Config) { c.NumSuggestions = 0 }},
		{"zero max queries", func(c *Config) { c.MaxQueries = 0 }},
		{"zero concurrency", func(c *Config) { c.SearchConcurrency = 0 }},
		{"negative rpm", func(c *Config) { c.LLMRequestsPerMinute = -1 }},
		{"empty catalog url", func(c *Config) { c.Catalog.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.Server.RequestTimeoutSecs = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
