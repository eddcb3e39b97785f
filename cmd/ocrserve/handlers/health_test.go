package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphlab/ocrserve/pkg/api"
)

func TestHealth(t *testing.T) {
	languages := []string{"en", "vi", "ch", "chinese_cht", "japan", "korean", "french", "german", "es", "ru"}
	h := NewHealthHandler("ocrserve", languages, "cached", 2)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ocrserve", resp.Service)
	assert.Equal(t, languages, resp.SupportedLanguages)
	assert.Equal(t, "cached", resp.EnginePolicy)
	assert.Equal(t, 2, resp.Concurrency)
}
