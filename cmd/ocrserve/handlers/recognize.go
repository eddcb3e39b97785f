package handlers

import (
	"errors"
	"io"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/glyphlab/ocrserve/internal/domain"
	"github.com/glyphlab/ocrserve/internal/observability"
	"github.com/glyphlab/ocrserve/pkg/api"
)

// RecognizeHandler handles image recognition requests.
type RecognizeHandler struct {
	logger         *observability.Logger
	service        domain.Recognizer
	maxUploadBytes int64
}

// NewRecognizeHandler creates a new recognition handler.
func NewRecognizeHandler(logger *observability.Logger, service domain.Recognizer, maxUploadBytes int64) *RecognizeHandler {
	return &RecognizeHandler{
		logger:         logger,
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Recognize handles POST /recognize. The request is a multipart form with
// the image under the "image" field and an optional "language" value.
// Anything past body parsing answers HTTP 200 with the recognition result;
// only a malformed or oversized body is rejected at the transport level.
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		ctx = observability.ContextWithRequestID(ctx, reqID)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.logger.WithContext(ctx).Warn().Int64("limit", h.maxUploadBytes).Msg("Upload exceeds size limit")
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		h.logger.WithContext(ctx).Warn().Err(err).Msg("Invalid multipart form")
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.logger.WithContext(ctx).Warn().Err(err).Msg("Upload missing image file")
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		h.logger.WithContext(ctx).Warn().Err(err).Msg("Failed to read upload body")
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	result := h.service.Recognize(ctx, domain.RecognizeRequest{
		Payload:  payload,
		Filename: header.Filename,
		Language: r.FormValue("language"),
	})

	writeJSON(w, http.StatusOK, toResponseDTO(result))
}

func toResponseDTO(res domain.Result) api.RecognizeResponse {
	return api.RecognizeResponse{
		Success:          res.Success,
		Text:             res.Text,
		Confidence:       res.Confidence,
		ProcessingTimeMs: res.ProcessingTimeMs,
		DetectedLanguage: res.DetectedLanguage,
		Error:            res.Error,
	}
}
