// Package handlers provides HTTP handlers for the OCR service API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/glyphlab/ocrserve/pkg/api"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: message})
}
