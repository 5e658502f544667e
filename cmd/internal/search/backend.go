package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entitysearch/cmd/internal/domain/entity"

	"github.com/panjf2000/ants/v2"
)

// DefaultLatency is the artificial delay standing in for a remote search
// service round trip.
const DefaultLatency = 800 * time.Millisecond

// ErrUnavailable means the search could not be scheduled at all. Callers
// should offer a retry.
var ErrUnavailable = errors.New("search backend unavailable")

// Backend runs the filter over a fixed collection as if it were a remote
// service: each call waits Latency on a pooled worker before answering.
type Backend struct {
	entities []entity.Entity
	latency  time.Duration
	pool     *ants.Pool
}

type result struct {
	entities []entity.Entity
	err      error
}

// NewBackend creates a backend with a bounded, non-blocking worker pool.
// When every worker is busy new searches fail fast with ErrUnavailable.
// Every entity must pass Validate.
func NewBackend(entities []entity.Entity, latency time.Duration, poolSize int) (*Backend, error) {
	for i := range entities {
		if err := entities[i].Validate(); err != nil {
			return nil, fmt.Errorf("entity %s: %w", entities[i].ID, err)
		}
	}

	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create search pool: %w", err)
	}

	return &Backend{
		entities: entities,
		latency:  latency,
		pool:     pool,
	}, nil
}

// Find returns the entities matching (t, value) after the configured
// latency. A cancelled ctx aborts the wait and returns ctx.Err().
func (b *Backend) Find(ctx context.Context, t entity.SearchType, value string) ([]entity.Entity, error) {
	done := make(chan result, 1)

	err := b.pool.Submit(func() {
		timer := time.NewTimer(b.latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			done <- result{err: ctx.Err()}
		case <-timer.C:
			done <- result{entities: Filter(b.entities, t, value)}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.entities, res.err
	}
}

// Lookup returns the entity with the given id without any delay.
func (b *Backend) Lookup(id string) (entity.Entity, bool) {
	for _, e := range b.entities {
		if e.ID == id {
			return e, true
		}
	}
	return entity.Entity{}, false
}

// Entities exposes the collection for in-process consumers such as the
// predictive suggester.
func (b *Backend) Entities() []entity.Entity {
	return b.entities
}

// Release stops the worker pool.
func (b *Backend) Release() {
	b.pool.Release()
}
