package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/glyphlab/ocrserve/internal/config"
	"github.com/glyphlab/ocrserve/internal/engine/tesseract"
	"github.com/glyphlab/ocrserve/internal/gate"
	"github.com/glyphlab/ocrserve/internal/language"
	"github.com/glyphlab/ocrserve/internal/observability"
	"github.com/glyphlab/ocrserve/internal/pipeline"
	"github.com/glyphlab/ocrserve/internal/registry"
)

func main() {
	// Load environment variables
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("policy", cfg.Engine.Policy).
		Int("concurrency", cfg.Engine.Concurrency).
		Str("default_language", cfg.Engine.DefaultLanguage).
		Msg("Starting OCR service")

	// Build the recognition pipeline
	factory, err := tesseract.NewFactory(cfg.Engine.TessdataPrefix)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize recognition backend")
		os.Exit(1)
	}
	logger.Info().Strs("models", factory.Languages()).Msg("Traineddata models available")

	policy, err := registry.ParsePolicy(cfg.Engine.Policy)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid engine policy")
		os.Exit(1)
	}

	resolver := language.NewResolverWith(cfg.Engine.Aliases, cfg.Engine.DefaultLanguage)
	engines := registry.New(factory, policy, logger)
	concurrencyGate := gate.New(cfg.Engine.Concurrency)
	service := pipeline.New(resolver, concurrencyGate, engines, logger)

	// Initialize router with all handlers
	router := NewRouter(logger, AppConfig{
		Service:        service,
		ServiceName:    cfg.Observability.ServiceName,
		Languages:      resolver.Supported(),
		Policy:         string(policy),
		Concurrency:    concurrencyGate.Capacity(),
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.WriteTimeout,
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt or error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	// Dispose cached engines after in-flight requests drain
	if err := engines.Close(); err != nil {
		logger.Error().Err(err).Msg("Engine registry close failed")
	}
	stats := engines.Stats()
	logger.Info().
		Int64("constructed", stats.Constructed).
		Int64("reused", stats.Reused).
		Int64("disposed", stats.Disposed).
		Msg("Server stopped")
}
