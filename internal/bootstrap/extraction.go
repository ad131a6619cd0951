// Package bootstrap assembles the extraction stack from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"meeting-archaeologist/config"
	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/internal/extraction/generator"
	"meeting-archaeologist/internal/extraction/usecase"
	"meeting-archaeologist/pkg/llmprovider"
	"meeting-archaeologist/pkg/log"
)

// NewExtractionUseCase builds providers, the provider manager, the generator
// and the retry loop, in that order.
func NewExtractionUseCase(ctx context.Context, cfg *config.Config, logger log.Logger) (extraction.UseCase, error) {
	providers, err := llmprovider.InitializeProviders(ctx, &cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("llmprovider.InitializeProviders: %w", err)
	}

	var maxTotal time.Duration
	if cfg.LLM.MaxTotalTimeout != "" {
		maxTotal, err = time.ParseDuration(cfg.LLM.MaxTotalTimeout)
		if err != nil {
			return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
		}
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled:   cfg.LLM.FallbackEnabled,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		MaxTotalTimeout:   maxTotal,
	}, logger)

	for i, p := range providers {
		logger.Infof(ctx, "LLM provider #%d: %s (%s)", i+1, p.Name(), p.Model())
	}

	gen := generator.New(manager, generator.Options{
		Temperature:     cfg.Extraction.Temperature,
		MaxOutputTokens: cfg.Extraction.MaxOutputTokens,
	})

	return usecase.New(logger, gen, usecase.Config{
		MaxRetries:     cfg.Extraction.MaxRetries,
		AttemptTimeout: cfg.Extraction.AttemptTimeout,
		MinInputLength: cfg.Extraction.MinInputLength,
		MaxInputLength: cfg.Extraction.MaxInputLength,
	}), nil
}
