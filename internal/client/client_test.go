package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphlab/ocrserve/pkg/api"
)

func TestRecognize_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recognize", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()

		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), payload)
		assert.Equal(t, "scan.png", header.Filename)
		assert.Equal(t, "vie", r.FormValue("language"))

		json.NewEncoder(w).Encode(api.RecognizeResponse{
			Success:          true,
			Text:             "hello",
			Confidence:       91.2,
			ProcessingTimeMs: 55,
			DetectedLanguage: "vie",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Recognize(context.Background(), "scan.png", []byte("png-bytes"), "vie")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "hello", res.Text)
	assert.Equal(t, 91.2, res.Confidence)
	assert.Equal(t, int64(55), res.ProcessingTimeMs)
	assert.Equal(t, "vie", res.DetectedLanguage)
}

func TestRecognize_OmitsEmptyLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["language"]
		assert.False(t, present)

		json.NewEncoder(w).Encode(api.RecognizeResponse{Success: true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Recognize(context.Background(), "scan.png", []byte("x"), "")
	require.NoError(t, err)
}

func TestRecognize_ServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(api.ErrorResponse{Error: "image file is required"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Recognize(context.Background(), "scan.png", []byte("x"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "image file is required")
}

func TestRecognize_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Recognize(context.Background(), "scan.png", []byte("x"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestRecognizeFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()

		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("file-bytes"), payload)
		assert.Equal(t, "page.png", header.Filename)

		json.NewEncoder(w).Encode(api.RecognizeResponse{Success: true, Text: "from file"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "page.png")
	require.NoError(t, os.WriteFile(path, []byte("file-bytes"), 0o644))

	c := New(srv.URL)
	res, err := c.RecognizeFile(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, "from file", res.Text)
}

func TestRecognizeFile_MissingFile(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.RecognizeFile(context.Background(), "/nonexistent/image.png", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read image file")
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(api.HealthResponse{
			Status:             "ok",
			Service:            "ocrserve",
			SupportedLanguages: []string{"en", "vi"},
			EnginePolicy:       "ephemeral",
			Concurrency:        4,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	health, err := c.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ephemeral", health.EnginePolicy)
	assert.Equal(t, 4, health.Concurrency)
	assert.Equal(t, []string{"en", "vi"}, health.SupportedLanguages)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}
