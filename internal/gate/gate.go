// Package gate bounds the number of recognition operations in flight.
package gate

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/glyphlab/ocrserve/internal/domain"
)

// Gate is a bounded semaphore guarding access to the recognition
// capability. Capacity is fixed at construction.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int
	inUse    atomic.Int64
	acquired atomic.Int64
}

// New creates a gate admitting up to capacity concurrent holders.
// Capacity below 1 is raised to 1.
func New(capacity int) *Gate {
	if capacity < 1 {
		capacity = 1
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Acquire blocks until a permit is free or ctx is done. A cancelled
// wait acquires nothing.
func (g *Gate) Acquire(ctx context.Context) (*Permit, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, domain.CancelledFault("cancelled while waiting for a recognition slot", err)
	}
	g.inUse.Add(1)
	g.acquired.Add(1)
	return &Permit{gate: g}, nil
}

// Capacity returns the maximum number of concurrent holders.
func (g *Gate) Capacity() int {
	return g.capacity
}

// InUse returns the number of permits currently held.
func (g *Gate) InUse() int {
	return int(g.inUse.Load())
}

// Acquired returns the total number of permits handed out so far.
func (g *Gate) Acquired() int {
	return int(g.acquired.Load())
}

// Permit is one unit of allowance from the gate, held for the duration
// of a single recognition.
type Permit struct {
	gate *Gate
	once sync.Once
}

// Release returns the permit to the gate. Only the first call frees
// the slot; the pipeline releases on every exit path, so later calls
// must be harmless.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.gate.inUse.Add(-1)
		p.gate.sem.Release(1)
	})
}
