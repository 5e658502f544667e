package service

import (
	"context"
	"sync"

	"entitysearch/cmd/internal/domain/entity"
	"entitysearch/cmd/internal/history"
	"entitysearch/cmd/internal/metrics"
	"entitysearch/cmd/internal/search"
	"entitysearch/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
)

func newValidator() *validator.Validate {
	v := validator.New()
	validators.Register(v)
	return v
}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// filterBackend answers straight from the filter, without latency.
type filterBackend struct {
	entities []entity.Entity
	err      error
}

func (f *filterBackend) Find(_ context.Context, t entity.SearchType, value string) ([]entity.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return search.Filter(f.entities, t, value), nil
}

func (f *filterBackend) Lookup(id string) (entity.Entity, bool) {
	for _, e := range f.entities {
		if e.ID == id {
			return e, true
		}
	}
	return entity.Entity{}, false
}

type stubSuggester struct {
	result []entity.Entity
	err    error
}

func (s *stubSuggester) Suggest(context.Context, string, entity.SearchType, string) ([]entity.Entity, error) {
	return s.result, s.err
}

type recordingHistory struct {
	mu      sync.Mutex
	records []history.AddParams
}

func (r *recordingHistory) Record(_ context.Context, params history.AddParams) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, params)
}

func (r *recordingHistory) all() []history.AddParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]history.AddParams(nil), r.records...)
}
