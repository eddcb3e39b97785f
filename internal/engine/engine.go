// Package engine defines the construction boundary for recognition engines.
package engine

import "github.com/glyphlab/ocrserve/internal/domain"

// Factory constructs engines bound to one canonical language. The
// registry is the only caller; it decides when instances are built,
// reused, and disposed.
type Factory interface {
	// Name identifies the backing implementation, e.g. "tesseract"
	Name() string

	// New constructs an engine for the canonical language. Construction
	// fails when model assets for the language are missing.
	New(language string) (domain.Engine, error)
}
