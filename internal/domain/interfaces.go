package domain

import "context"

// Engine performs text recognition on a single raster image.
type Engine interface {
	// Recognize extracts text lines from the raster
	Recognize(ctx context.Context, raster Raster) ([]Line, error)

	// Close releases native resources held by the engine
	Close() error
}

// ReleaseFunc returns an acquired engine to its source. It must be
// called exactly once; later calls are no-ops.
type ReleaseFunc func()

// EngineSource hands out an engine for a resolved language and takes
// it back when the request is done.
type EngineSource interface {
	// Acquire returns a ready engine and the release callback for it
	Acquire(ctx context.Context, language string) (Engine, ReleaseFunc, error)

	// Close disposes every engine the source still holds
	Close() error
}

// Recognizer orchestrates the complete workflow for one upload:
// decode payload -> resolve language -> acquire engine -> recognize
type Recognizer interface {
	Recognize(ctx context.Context, req RecognizeRequest) Result
}
