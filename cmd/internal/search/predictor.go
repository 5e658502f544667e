package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"entitysearch/cmd/internal/domain/entity"
)

// DefaultDebounce is the quiet period a session must keep before its latest
// query is evaluated.
const DefaultDebounce = 300 * time.Millisecond

// ErrSuperseded is returned to a suggestion request that was overtaken by a
// newer one from the same session.
var ErrSuperseded = errors.New("suggestion superseded by a newer query")

// Predictor serves debounced as-you-type suggestions. Every request bumps
// its session generation; only a request whose generation is still the
// latest after the quiet period gets results.
type Predictor struct {
	entities []entity.Entity
	debounce time.Duration

	mu sync.Mutex
	// seq is global so a generation is never reused, even after a
	// session's entry has been dropped.
	seq         uint64
	generations map[string]uint64
}

func NewPredictor(entities []entity.Entity, debounce time.Duration) *Predictor {
	return &Predictor{
		entities:    entities,
		debounce:    debounce,
		generations: make(map[string]uint64),
	}
}

// Suggest waits for the debounce window and returns matches for value, or
// ErrSuperseded when session issued another query meanwhile. Queries of
// PredictiveMinLength characters or fewer return an empty list right away,
// still cancelling anything pending for the session.
func (p *Predictor) Suggest(ctx context.Context, session string, t entity.SearchType, value string) ([]entity.Entity, error) {
	gen := p.next(session)

	if len([]rune(value)) <= PredictiveMinLength {
		p.finish(session, gen)
		return make([]entity.Entity, 0), nil
	}

	timer := time.NewTimer(p.debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		p.finish(session, gen)
		return nil, ctx.Err()
	case <-timer.C:
	}

	if !p.isLatest(session, gen) {
		return nil, ErrSuperseded
	}

	results := Predictive(p.entities, t, value)

	// a newer query may have started while filtering
	if !p.finish(session, gen) {
		return nil, ErrSuperseded
	}
	return results, nil
}

func (p *Predictor) next(session string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.generations[session] = p.seq
	return p.seq
}

func (p *Predictor) isLatest(session string, gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generations[session] == gen
}

// finish reports whether gen is still the latest for session and, if so,
// forgets the session so the map does not grow with idle clients.
func (p *Predictor) finish(session string, gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generations[session] != gen {
		return false
	}
	delete(p.generations, session)
	return true
}

// Pending reports how many sessions have an unanswered query.
func (p *Predictor) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.generations)
}
