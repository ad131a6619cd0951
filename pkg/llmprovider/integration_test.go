package llmprovider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"meeting-archaeologist/config"
	"meeting-archaeologist/pkg/llmprovider"
	"meeting-archaeologist/pkg/log"
)

// TestIntegration_ConfigToManagerFlow verifies that configuration,
// provider initialization and the manager work together.
func TestIntegration_ConfigToManagerFlow(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "qwen", Enabled: true, Priority: 1, APIKey: "test-qwen-key", Model: "qwen-plus", Timeout: "30s"},
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "test-gemini-key", Model: "gemini-2.0-flash"},
			{Name: "deepseek", Enabled: false, Priority: 3, APIKey: "test-deepseek-key"},
		},
		FallbackEnabled:   true,
		RequestsPerMinute: 60,
		MaxTotalTimeout:   "60s",
	}

	logger := log.NewNop()
	providers, err := llmprovider.InitializeProviders(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("Expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name() != "qwen" || providers[1].Name() != "gemini" {
		t.Errorf("Unexpected provider order: %s, %s", providers[0].Name(), providers[1].Name())
	}

	maxTotal, _ := time.ParseDuration(cfg.MaxTotalTimeout)
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled:   cfg.FallbackEnabled,
		RequestsPerMinute: cfg.RequestsPerMinute,
		MaxTotalTimeout:   maxTotal,
	}, logger)

	if manager.Model() != "qwen-plus" {
		t.Errorf("Expected primary model qwen-plus, got %s", manager.Model())
	}
}

// TestIntegration_ConfigValidation verifies that invalid configurations
// are caught during initialization
func TestIntegration_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LLMConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "qwen", Enabled: true, Priority: 1, APIKey: "test-key", Model: "qwen-plus"},
			}},
		},
		{
			name: "genai with api key",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "genai", Enabled: true, Priority: 1, APIKey: "test-key", Backend: "gemini"},
			}},
		},
		{name: "nil config", cfg: nil, wantErr: true},
		{name: "no providers", cfg: &config.LLMConfig{}, wantErr: true},
		{
			name: "all providers disabled",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "qwen", Enabled: false, Priority: 1, APIKey: "test-key"},
			}},
			wantErr: true,
		},
		{
			name: "missing API key",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "qwen", Enabled: true, Priority: 1},
			}},
			wantErr: true,
		},
		{
			name: "unknown provider",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, APIKey: "test-key"},
			}},
			wantErr: true,
		},
		{
			name: "bad timeout",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: true, Priority: 1, APIKey: "test-key", Timeout: "later"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := llmprovider.InitializeProviders(context.Background(), tt.cfg, log.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("InitializeProviders() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestIntegration_PartialInitialization keeps the working providers when one fails.
func TestIntegration_PartialInitialization(t *testing.T) {
	cfg := &config.LLMConfig{Providers: []config.ProviderConfig{
		{Name: "gemini", Enabled: true, Priority: 10, APIKey: "test-gemini-key"},
		{Name: "deepseek", Enabled: true, Priority: 1},
	}}

	providers, err := llmprovider.InitializeProviders(context.Background(), cfg, log.NewNop())
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != "gemini" {
		t.Errorf("Expected only gemini to survive, got %d providers", len(providers))
	}
}

func TestIntegration_AllFailedIsNoProviders(t *testing.T) {
	cfg := &config.LLMConfig{Providers: []config.ProviderConfig{{Name: "gemini", Enabled: true, Priority: 1}}}

	_, err := llmprovider.InitializeProviders(context.Background(), cfg, log.NewNop())
	if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got %v", err)
	}
}
