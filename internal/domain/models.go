package domain

// RecognizeRequest is one uploaded payload with the caller's language hint.
type RecognizeRequest struct {
	Payload  []byte
	Filename string
	Language string
}

// Raster is a validated page image ready for recognition.
type Raster struct {
	Data   []byte // encoded image bytes accepted by the engine
	Format string // source format name, e.g. "png", "jpeg", "pdf"
	Width  int
	Height int
}

// Line represents a single recognized text line with its confidence
// as reported by the engine, normalized to the 0.0-1.0 range.
type Line struct {
	Text       string
	Confidence float64
}

// Result is the outcome of one recognition request. Confidence is a
// percentage (0-100, one decimal) and ProcessingTimeMs is wall-clock
// milliseconds spent on the request, set on success and failure alike.
type Result struct {
	Success          bool
	Text             string
	Confidence       float64
	ProcessingTimeMs int64
	DetectedLanguage string
	Error            string
}

// Failure builds a failed Result carrying the fault message and the
// elapsed time. Text, confidence, and the language echo stay at their
// zero values.
func Failure(err error, processingTimeMs int64) Result {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Result{
		Success:          false,
		ProcessingTimeMs: processingTimeMs,
		Error:            msg,
	}
}
