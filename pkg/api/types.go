// Package api defines the wire types shared by the OCR service and its
// clients. Field names follow the original recognition endpoint contract.
package api

// RecognizeResponse is the body of POST /recognize. Every field is always
// serialized; failed recognitions carry success=false and a populated error.
type RecognizeResponse struct {
	Success          bool    `json:"success"`
	Text             string  `json:"text"`
	Confidence       float64 `json:"confidence"`
	ProcessingTimeMs int64   `json:"processingTime"`
	DetectedLanguage string  `json:"detectedLanguage"`
	Error            string  `json:"error"`
}

// HealthResponse is the body of GET / and GET /health.
type HealthResponse struct {
	Status             string   `json:"status"`
	Service            string   `json:"service"`
	SupportedLanguages []string `json:"supportedLanguages"`
	EnginePolicy       string   `json:"enginePolicy"`
	Concurrency        int      `json:"concurrency"`
}

// ErrorResponse is the body of protocol-level rejections (malformed
// multipart, missing file part, oversized upload).
type ErrorResponse struct {
	Error string `json:"error"`
}
