package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"meeting-archaeologist/config"
	"meeting-archaeologist/pkg/llmprovider"
	"meeting-archaeologist/pkg/log"
)

func TestNewExtractionUseCase(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			LLM: config.LLMConfig{
				Providers: []config.ProviderConfig{
					{Name: "gemini", Enabled: true, Priority: 1, APIKey: "test-key", Timeout: "30s"},
				},
				RequestsPerMinute: 60,
				MaxTotalTimeout:   "60s",
			},
			Extraction: config.ExtractionConfig{
				MaxRetries:     2,
				AttemptTimeout: 30 * time.Second,
				MinInputLength: 20,
			},
		}
	}

	t.Run("builds with a configured provider", func(t *testing.T) {
		uc, err := NewExtractionUseCase(context.Background(), base(), log.NewNop())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uc == nil {
			t.Fatal("expected a usecase")
		}
	})

	t.Run("no usable provider", func(t *testing.T) {
		cfg := base()
		cfg.LLM.Providers[0].APIKey = ""
		_, err := NewExtractionUseCase(context.Background(), cfg, log.NewNop())
		if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})

	t.Run("bad total timeout", func(t *testing.T) {
		cfg := base()
		cfg.LLM.MaxTotalTimeout = "soon"
		if _, err := NewExtractionUseCase(context.Background(), cfg, log.NewNop()); err == nil {
			t.Fatal("expected an error for an unparseable timeout")
		}
	})
}
