// Package pipeline orchestrates recognition requests end to end.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/glyphlab/ocrserve/internal/domain"
	"github.com/glyphlab/ocrserve/internal/gate"
	"github.com/glyphlab/ocrserve/internal/imaging"
	"github.com/glyphlab/ocrserve/internal/language"
	"github.com/glyphlab/ocrserve/internal/observability"
)

// Pipeline runs one recognition request end to end: decode, language
// resolution, gate admission, engine acquisition, recognition, and
// aggregation. Faults are translated into results here; nothing below
// the transport ever sees an error escape.
type Pipeline struct {
	resolver *language.Resolver
	gate     *gate.Gate
	engines  domain.EngineSource
	logger   *observability.Logger
}

// New wires a pipeline from its collaborators.
func New(resolver *language.Resolver, g *gate.Gate, engines domain.EngineSource, logger *observability.Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		gate:     g,
		engines:  engines,
		logger:   logger.WithComponent("pipeline"),
	}
}

// Recognize processes one uploaded payload. A single pass, no retries.
// The reported elapsed time covers the whole call, including any
// blocking on the gate, on success and failure alike.
func (p *Pipeline) Recognize(ctx context.Context, req domain.RecognizeRequest) domain.Result {
	start := time.Now()
	logger := p.logger.WithContext(ctx)

	// The response echoes the caller's code verbatim; resolution is
	// internal only.
	echo := req.Language
	if strings.TrimSpace(echo) == "" {
		echo = p.resolver.Default()
	}

	fail := func(err error) domain.Result {
		elapsed := time.Since(start)
		logger.Warn().
			Err(err).
			Str("fault", string(domain.ClassifyFault(err))).
			Str("language", echo).
			Str("file", req.Filename).
			Dur("elapsed", elapsed).
			Msg("Recognition failed")
		return domain.Failure(err, elapsed.Milliseconds())
	}

	// Decode before taking a permit: a malformed payload must not
	// consume a recognition slot.
	raster, err := imaging.Decode(req.Payload)
	if err != nil {
		return fail(err)
	}

	resolved := p.resolver.Resolve(req.Language)

	permit, err := p.gate.Acquire(ctx)
	if err != nil {
		return fail(err)
	}
	defer permit.Release()

	eng, release, err := p.engines.Acquire(ctx, resolved)
	if err != nil {
		return fail(err)
	}
	// Defers unwind engine first, then permit, on every exit path.
	defer release()

	lines, err := eng.Recognize(ctx, raster)
	if err != nil {
		return fail(err)
	}

	text, confidence := Aggregate(lines)
	elapsed := time.Since(start)
	logger.Info().
		Str("language", resolved).
		Str("format", raster.Format).
		Int("lines", len(lines)).
		Float64("confidence", confidence).
		Dur("elapsed", elapsed).
		Msg("Recognition completed")

	return domain.Result{
		Success:          true,
		Text:             text,
		Confidence:       confidence,
		ProcessingTimeMs: elapsed.Milliseconds(),
		DetectedLanguage: echo,
	}
}
