// Package tesseract adapts the gosseract client to the engine boundary.
package tesseract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/glyphlab/ocrserve/internal/domain"
)

// traineddata maps canonical language identifiers to tesseract model names.
var traineddata = map[string]string{
	"en":          "eng",
	"vi":          "vie",
	"ch":          "chi_sim",
	"chinese_cht": "chi_tra",
	"japan":       "jpn",
	"korean":      "kor",
	"french":      "fra",
	"german":      "deu",
	"es":          "spa",
	"ru":          "rus",
}

// Factory constructs tesseract-backed engines. Installed traineddata is
// probed once at construction; languages without a model fail at New
// rather than mid-recognition.
type Factory struct {
	prefix    string
	available map[string]bool
}

// NewFactory probes the traineddata installed under prefix (the
// default tesseract data directory when prefix is empty).
func NewFactory(prefix string) (*Factory, error) {
	available, err := probeTraineddata(prefix)
	if err != nil {
		return nil, domain.EngineUnavailable("failed to enumerate traineddata", err)
	}
	return &Factory{
		prefix:    prefix,
		available: available,
	}, nil
}

func (f *Factory) Name() string { return "tesseract" }

// New constructs an engine bound to the canonical language.
func (f *Factory) New(language string) (domain.Engine, error) {
	model, ok := traineddata[language]
	if !ok {
		return nil, domain.EngineUnavailable(fmt.Sprintf("no traineddata mapping for language %q", language), nil)
	}
	if !f.available[model] {
		return nil, domain.EngineUnavailable(fmt.Sprintf("traineddata %q is not installed", model), nil)
	}

	client := gosseract.NewClient()
	if f.prefix != "" {
		if err := client.SetTessdataPrefix(f.prefix); err != nil {
			client.Close()
			return nil, domain.EngineUnavailable("failed to set tessdata prefix", err)
		}
	}
	if err := client.SetLanguage(model); err != nil {
		client.Close()
		return nil, domain.EngineUnavailable(fmt.Sprintf("failed to configure language %q", model), err)
	}
	// Uploads rarely carry resolution metadata; pin the DPI so
	// tesseract does not fall back to its 70 DPI guess.
	if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), "300"); err != nil {
		client.Close()
		return nil, domain.EngineUnavailable("failed to set dpi", err)
	}

	return &Engine{
		language: language,
		model:    model,
		client:   client,
	}, nil
}

// Languages lists the canonical languages this factory can build
// engines for, given the installed traineddata.
func (f *Factory) Languages() []string {
	out := make([]string, 0, len(traineddata))
	for canonical, model := range traineddata {
		if f.available[model] {
			out = append(out, canonical)
		}
	}
	return out
}

func probeTraineddata(prefix string) (map[string]bool, error) {
	if prefix == "" {
		langs, err := gosseract.GetAvailableLanguages()
		if err != nil {
			return nil, err
		}
		available := make(map[string]bool, len(langs))
		for _, l := range langs {
			available[l] = true
		}
		return available, nil
	}

	entries, err := os.ReadDir(prefix)
	if err != nil {
		return nil, err
	}
	available := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if model, ok := strings.CutSuffix(name, ".traineddata"); ok {
			available[model] = true
		}
	}
	return available, nil
}

// Engine is one live gosseract client bound to a single language. The
// client is not reentrant, so all access is serialized on a mutex;
// under normal operation the concurrency gate and the registry already
// guarantee exclusive use.
type Engine struct {
	language string
	model    string

	mu     sync.Mutex
	client *gosseract.Client
	closed bool
}

// Recognize extracts text lines from the raster. The underlying call
// is not preemptible; ctx is only checked before recognition starts.
func (e *Engine) Recognize(ctx context.Context, raster domain.Raster) ([]domain.Line, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, domain.RecognitionFault("engine is closed", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.client.SetImageFromBytes(raster.Data); err != nil {
		return nil, domain.RecognitionFault("failed to load image into engine", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, domain.RecognitionFault("recognition failed", err)
	}

	lines := make([]domain.Line, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		lines = append(lines, domain.Line{
			Text:       text,
			Confidence: box.Confidence / 100.0,
		})
	}
	return lines, nil
}

// Close releases the native client. Safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	return e.client.Close()
}
