package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"meeting-archaeologist/config"
	_ "meeting-archaeologist/docs" // Swagger docs
	"meeting-archaeologist/internal/bootstrap"
	"meeting-archaeologist/internal/httpserver"
	"meeting-archaeologist/internal/middleware"
	"meeting-archaeologist/pkg/log"
)

// @title       Meeting Archaeologist API
// @description Extracts decisions, tasks and noise from meeting text with a validated LLM loop.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof(ctx, "Starting %s %s...", cfg.App.Name, cfg.App.Version)
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Extraction domain
	extractionUC, err := bootstrap.NewExtractionUseCase(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize extraction: ", err)
		os.Exit(1)
	}
	logger.Infof(ctx, "Extraction loop: max_retries=%d attempt_timeout=%s",
		cfg.Extraction.MaxRetries, cfg.Extraction.AttemptTimeout)

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		AppName:      cfg.App.Name,
		AppVersion:   cfg.App.Version,
		Middleware:   middleware.New(logger, cfg),
		ExtractionUC: extractionUC,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}
