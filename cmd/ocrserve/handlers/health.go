package handlers

import (
	"net/http"

	"github.com/glyphlab/ocrserve/pkg/api"
)

// HealthHandler answers service health probes.
type HealthHandler struct {
	service     string
	languages   []string
	policy      string
	concurrency int
}

// NewHealthHandler creates a health handler advertising the given service
// name, supported languages and engine settings.
func NewHealthHandler(service string, languages []string, policy string, concurrency int) *HealthHandler {
	return &HealthHandler{
		service:     service,
		languages:   languages,
		policy:      policy,
		concurrency: concurrency,
	}
}

// Health handles GET / and GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:             "ok",
		Service:            h.service,
		SupportedLanguages: h.languages,
		EnginePolicy:       h.policy,
		Concurrency:        h.concurrency,
	})
}
