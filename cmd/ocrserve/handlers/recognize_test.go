package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphlab/ocrserve/internal/domain"
	"github.com/glyphlab/ocrserve/internal/observability"
	"github.com/glyphlab/ocrserve/pkg/api"
)

type stubService struct {
	result  domain.Result
	lastReq domain.RecognizeRequest
	calls   int
}

func (s *stubService) Recognize(ctx context.Context, req domain.RecognizeRequest) domain.Result {
	s.lastReq = req
	s.calls++
	return s.result
}

func multipartBody(t *testing.T, filename string, payload []byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(payload)
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func newRecognizeHandler(service domain.Recognizer, maxUploadBytes int64) *RecognizeHandler {
	return NewRecognizeHandler(observability.NopLogger(), service, maxUploadBytes)
}

func TestRecognize_Success(t *testing.T) {
	service := &stubService{
		result: domain.Result{
			Success:          true,
			Text:             "Invoice 42",
			Confidence:       93.4,
			ProcessingTimeMs: 120,
			DetectedLanguage: "en",
		},
	}
	h := newRecognizeHandler(service, 10<<20)

	body, contentType := multipartBody(t, "scan.png", []byte("fake-png-bytes"), map[string]string{"language": "en"})
	req := httptest.NewRequest(http.MethodPost, "/recognize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Recognize(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp api.RecognizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Invoice 42", resp.Text)
	assert.Equal(t, 93.4, resp.Confidence)
	assert.Equal(t, int64(120), resp.ProcessingTimeMs)
	assert.Equal(t, "en", resp.DetectedLanguage)
	assert.Empty(t, resp.Error)

	assert.Equal(t, []byte("fake-png-bytes"), service.lastReq.Payload)
	assert.Equal(t, "scan.png", service.lastReq.Filename)
	assert.Equal(t, "en", service.lastReq.Language)
}

func TestRecognize_FailureResultIsStillHTTP200(t *testing.T) {
	service := &stubService{
		result: domain.Failure(domain.DecodeFault("unsupported image format", nil), 7),
	}
	h := newRecognizeHandler(service, 10<<20)

	body, contentType := multipartBody(t, "scan.bin", []byte{0xde, 0xad}, nil)
	req := httptest.NewRequest(http.MethodPost, "/recognize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Recognize(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.RecognizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, resp.Text)
}

func TestRecognize_AbsentLanguagePassesEmpty(t *testing.T) {
	service := &stubService{result: domain.Result{Success: true}}
	h := newRecognizeHandler(service, 10<<20)

	body, contentType := multipartBody(t, "scan.png", []byte("x"), nil)
	req := httptest.NewRequest(http.MethodPost, "/recognize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Recognize(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, service.lastReq.Language)
}

func TestRecognize_MissingFilePart(t *testing.T) {
	service := &stubService{}
	h := newRecognizeHandler(service, 10<<20)

	body, contentType := multipartBody(t, "", nil, map[string]string{"language": "en"})
	req := httptest.NewRequest(http.MethodPost, "/recognize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Recognize(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "image file is required", resp.Error)
	assert.Zero(t, service.calls)
}

func TestRecognize_MalformedMultipart(t *testing.T) {
	service := &stubService{}
	h := newRecognizeHandler(service, 10<<20)

	req := httptest.NewRequest(http.MethodPost, "/recognize", strings.NewReader("not a form"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	h.Recognize(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid multipart form", resp.Error)
	assert.Zero(t, service.calls)
}

func TestRecognize_OversizedUpload(t *testing.T) {
	service := &stubService{}
	h := newRecognizeHandler(service, 64)

	body, contentType := multipartBody(t, "big.png", bytes.Repeat([]byte("a"), 4096), nil)
	req := httptest.NewRequest(http.MethodPost, "/recognize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Recognize(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, service.calls)
}
