package pipeline

import (
	"math"
	"strings"

	"github.com/glyphlab/ocrserve/internal/domain"
)

// Aggregate reduces recognized lines to a single text blob and an
// averaged confidence percentage. Text is the lines joined in reading
// order with newlines. Confidence is the arithmetic mean of the
// well-formed per-line confidences scaled to 0-100 and rounded to one
// decimal; lines whose confidence is NaN or outside [0,1] still
// contribute their text but are excluded from the mean.
func Aggregate(lines []domain.Line) (string, float64) {
	if len(lines) == 0 {
		return "", 0
	}

	texts := make([]string, 0, len(lines))
	sum := 0.0
	counted := 0
	for _, line := range lines {
		texts = append(texts, line.Text)
		if math.IsNaN(line.Confidence) || line.Confidence < 0 || line.Confidence > 1 {
			continue
		}
		sum += line.Confidence
		counted++
	}

	text := strings.Join(texts, "\n")
	if counted == 0 {
		return text, 0
	}

	avg := sum / float64(counted) * 100
	return text, math.Round(avg*10) / 10
}
