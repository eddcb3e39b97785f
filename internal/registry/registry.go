// Package registry owns the lifecycle of recognition engines.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/glyphlab/ocrserve/internal/domain"
	"github.com/glyphlab/ocrserve/internal/engine"
	"github.com/glyphlab/ocrserve/internal/observability"
)

// Policy selects how engine instances live between requests.
type Policy string

const (
	// PolicyCached retains one engine per language for the process
	// lifetime. Favors latency; memory grows with the number of
	// distinct languages seen.
	PolicyCached Policy = "cached"

	// PolicyEphemeral constructs a fresh engine for every request and
	// disposes it afterwards. Bounds peak memory; pays the
	// construction cost on each request.
	PolicyEphemeral Policy = "ephemeral"
)

// ParsePolicy validates a policy name from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyCached:
		return PolicyCached, nil
	case PolicyEphemeral:
		return PolicyEphemeral, nil
	default:
		return "", fmt.Errorf("unknown engine policy %q (want cached or ephemeral)", s)
	}
}

// Stats is a point-in-time view of registry activity.
type Stats struct {
	Policy          Policy   `json:"policy"`
	Constructed     int64    `json:"constructed"`
	Reused          int64    `json:"reused"`
	Disposed        int64    `json:"disposed"`
	CachedLanguages []string `json:"cachedLanguages"`
}

// Registry owns the mapping from canonical language to live engine and
// enforces the configured lifecycle policy. Safe for concurrent use by
// any number of callers; the concurrency gate is a separate concern.
type Registry struct {
	policy  Policy
	factory engine.Factory
	logger  *observability.Logger

	mu     sync.Mutex
	cache  map[string]*slot
	closed bool

	constructed atomic.Int64
	reused      atomic.Int64
	disposed    atomic.Int64
}

// slot serializes access to one cached engine. The lock channel holds
// one token; whoever holds it may use the engine and, under the
// registry mutex, update the engine fields.
type slot struct {
	lock   chan struct{}
	id     string
	engine domain.Engine
}

// New creates a registry under the given policy.
func New(factory engine.Factory, policy Policy, logger *observability.Logger) *Registry {
	return &Registry{
		policy:  policy,
		factory: factory,
		logger:  logger.WithComponent("registry"),
		cache:   make(map[string]*slot),
	}
}

// Policy returns the active lifecycle policy.
func (r *Registry) Policy() Policy {
	return r.policy
}

// Acquire hands out an engine for the language together with the
// release callback paired to it. The callback must be invoked exactly
// once when the request is done; extra calls are no-ops. Construction
// failures surface as EngineUnavailable and are never retried here.
func (r *Registry) Acquire(ctx context.Context, language string) (domain.Engine, domain.ReleaseFunc, error) {
	if r.policy == PolicyEphemeral {
		return r.acquireEphemeral(language)
	}
	return r.acquireCached(ctx, language)
}

func (r *Registry) acquireEphemeral(language string) (domain.Engine, domain.ReleaseFunc, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, nil, domain.EngineUnavailable("registry is closed", nil)
	}
	r.mu.Unlock()

	eng, err := r.factory.New(language)
	if err != nil {
		return nil, nil, err
	}
	id := uuid.NewString()
	r.constructed.Add(1)
	r.logger.Debug().Str("language", language).Str("engine_id", id).Msg("Constructed ephemeral engine")

	var once sync.Once
	release := func() {
		once.Do(func() {
			if err := eng.Close(); err != nil {
				r.logger.Warn().Err(err).Str("language", language).Str("engine_id", id).Msg("Engine close failed")
			}
			r.disposed.Add(1)
			r.logger.Debug().Str("language", language).Str("engine_id", id).Msg("Disposed ephemeral engine")
		})
	}
	return eng, release, nil
}

func (r *Registry) acquireCached(ctx context.Context, language string) (domain.Engine, domain.ReleaseFunc, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, nil, domain.EngineUnavailable("registry is closed", nil)
	}
	s, ok := r.cache[language]
	if !ok {
		s = &slot{lock: make(chan struct{}, 1)}
		r.cache[language] = s
	}
	r.mu.Unlock()

	// A cached engine is not safe for concurrent use; take the
	// language slot before touching it. The wait honors caller
	// cancellation.
	select {
	case s.lock <- struct{}{}:
	case <-ctx.Done():
		return nil, nil, domain.CancelledFault("cancelled while waiting for the language engine", ctx.Err())
	}

	r.mu.Lock()
	eng := s.engine
	closed := r.closed
	r.mu.Unlock()

	if closed {
		<-s.lock
		return nil, nil, domain.EngineUnavailable("registry is closed", nil)
	}

	if eng == nil {
		built, err := r.factory.New(language)
		if err != nil {
			<-s.lock
			return nil, nil, err
		}
		id := uuid.NewString()
		r.mu.Lock()
		s.engine = built
		s.id = id
		r.mu.Unlock()
		r.constructed.Add(1)
		r.logger.Info().Str("language", language).Str("engine_id", id).Msg("Constructed cached engine")
		eng = built
	} else {
		r.reused.Add(1)
	}

	var once sync.Once
	release := func() {
		once.Do(func() { <-s.lock })
	}
	return eng, release, nil
}

// Stats reports construction and reuse counters plus the languages
// currently holding a cached engine.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	languages := make([]string, 0, len(r.cache))
	for lang, s := range r.cache {
		if s.engine != nil {
			languages = append(languages, lang)
		}
	}
	sort.Strings(languages)

	return Stats{
		Policy:          r.policy,
		Constructed:     r.constructed.Load(),
		Reused:          r.reused.Load(),
		Disposed:        r.disposed.Load(),
		CachedLanguages: languages,
	}
}

// Close disposes every cached engine and rejects further acquires.
// It waits for in-flight holders to release before closing their
// engines.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	slots := make(map[string]*slot, len(r.cache))
	for lang, s := range r.cache {
		slots[lang] = s
	}
	r.mu.Unlock()

	var errs []error
	for lang, s := range slots {
		s.lock <- struct{}{}
		r.mu.Lock()
		eng := s.engine
		id := s.id
		s.engine = nil
		r.mu.Unlock()
		<-s.lock

		if eng == nil {
			continue
		}
		if err := eng.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s engine: %w", lang, err))
			continue
		}
		r.disposed.Add(1)
		r.logger.Info().Str("language", lang).Str("engine_id", id).Msg("Disposed cached engine")
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry close errors: %v", errs)
	}
	return nil
}
