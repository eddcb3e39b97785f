// Package main provides the OCR service API server entrypoint.
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/glyphlab/ocrserve/cmd/ocrserve/handlers"
	"github.com/glyphlab/ocrserve/cmd/ocrserve/middleware"
	"github.com/glyphlab/ocrserve/internal/domain"
	"github.com/glyphlab/ocrserve/internal/observability"
)

// AppConfig holds the wiring the router needs from the loaded configuration.
type AppConfig struct {
	Service        domain.Recognizer
	ServiceName    string
	Languages      []string
	Policy         string
	Concurrency    int
	MaxUploadBytes int64
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter creates the API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg AppConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	health := handlers.NewHealthHandler(cfg.ServiceName, cfg.Languages, cfg.Policy, cfg.Concurrency)
	recognize := handlers.NewRecognizeHandler(logger, cfg.Service, cfg.MaxUploadBytes)

	// The root path doubles as a health probe for compatibility with
	// existing deployments.
	r.Get("/", health.Health)
	r.Get("/health", health.Health)
	r.Post("/recognize", recognize.Recognize)

	return r
}
