package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"entitysearch/cmd/internal/contract"
	"entitysearch/cmd/internal/domain/entity"
	"entitysearch/cmd/internal/history"
	"entitysearch/cmd/internal/metrics"
	"entitysearch/cmd/internal/search"
	"entitysearch/cmd/internal/utils/apierror"
	"entitysearch/cmd/internal/validators"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type SearchBackend interface {
	Find(ctx context.Context, t entity.SearchType, value string) ([]entity.Entity, error)
	Lookup(id string) (entity.Entity, bool)
}

type Suggester interface {
	Suggest(ctx context.Context, session string, t entity.SearchType, value string) ([]entity.Entity, error)
}

// HistoryRecorder records search and details-view actions. It never fails
// from the caller's point of view.
type HistoryRecorder interface {
	Record(ctx context.Context, params history.AddParams)
}

type DefaultSearchService struct {
	Backend         SearchBackend
	Suggester       Suggester
	History         HistoryRecorder
	SearchValidator *validators.SearchValidator
	Validate        *validator.Validate
	Metrics         *metrics.Metrics
}

func NewSearchService(
	backend SearchBackend,
	suggester Suggester,
	recorder HistoryRecorder,
	validate *validator.Validate,
	m *metrics.Metrics,
) *DefaultSearchService {
	return &DefaultSearchService{
		Backend:         backend,
		Suggester:       suggester,
		History:         recorder,
		SearchValidator: validators.NewSearchValidator(validate),
		Validate:        validate,
		Metrics:         m,
	}
}

// Search validates the query, records it in the history and runs it against
// the backend. Results can be narrowed by entity type and are paginated.
func (s *DefaultSearchService) Search(ctx context.Context, req *contract.SearchRequest) (*contract.SearchResponse, apierror.ErrorResponse) {
	req.EntityTypes = splitList(req.EntityTypes)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	st, apierr := s.parseAndValidate(req.Type, req.Value)
	if apierr != nil {
		return nil, apierr
	}

	s.History.Record(ctx, history.AddParams{Type: st, Value: req.Value})

	start := time.Now()
	found, err := s.Backend.Find(ctx, st, req.Value)
	if err != nil {
		return nil, s.searchFailure(st, err)
	}
	s.Metrics.SearchLatency.Observe(time.Since(start).Seconds())
	s.Metrics.Searches.WithLabelValues(st.String(), "ok").Inc()

	filtered := filterByEntityType(found, req.EntityTypes)
	page, pageSize := pageParams(req.Page, req.PageSize)

	return &contract.SearchResponse{
		Type:       st.String(),
		Value:      req.Value,
		Results:    paginate(filtered, page, pageSize),
		Total:      len(filtered),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (len(filtered) + pageSize - 1) / pageSize,
	}, nil
}

// Suggest returns predictive matches for a partially typed query. Values
// are not validated since they are incomplete by nature, and nothing is
// recorded in the history.
func (s *DefaultSearchService) Suggest(ctx context.Context, session string, req *contract.SuggestionRequest) (*contract.SuggestionResponse, apierror.ErrorResponse) {
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	st, err := entity.ParseSearchType(req.Type)
	if err != nil {
		return nil, apierror.UnknownSearchTypeError
	}

	suggestions, err := s.Suggester.Suggest(ctx, session, st, req.Value)
	switch {
	case errors.Is(err, search.ErrSuperseded):
		s.Metrics.Suggestions.WithLabelValues("superseded").Inc()
		return nil, apierror.SuggestionSupersededError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.Metrics.Suggestions.WithLabelValues("canceled").Inc()
		return nil, apierror.RequestCanceledError
	case err != nil:
		log.Errorf("failed to compute suggestions for %s: %v", st, err)
		return nil, apierror.InternalServerError
	}

	s.Metrics.Suggestions.WithLabelValues("ok").Inc()
	return &contract.SuggestionResponse{Suggestions: suggestions}, nil
}

// GetEntity returns one entity and records the details view, carrying a
// snapshot of the entity, in the history.
func (s *DefaultSearchService) GetEntity(ctx context.Context, id string) (*entity.Entity, apierror.ErrorResponse) {
	found, ok := s.Backend.Lookup(id)
	if !ok {
		return nil, apierror.NotFoundError
	}

	snapshot := found
	s.History.Record(ctx, history.AddParams{
		Type:   entity.SearchDetailsView,
		Value:  found.Document,
		Entity: &snapshot,
	})
	return &found, nil
}

func (s *DefaultSearchService) parseAndValidate(rawType, value string) (entity.SearchType, apierror.ErrorResponse) {
	st, err := entity.ParseSearchType(rawType)
	if err != nil {
		return "", apierror.UnknownSearchTypeError
	}

	if verr := s.SearchValidator.Validate(st, value); verr != nil {
		s.Metrics.ValidationFailures.WithLabelValues(st.String()).Inc()
		return "", apierror.NewFieldError(verr.Field, verr.Message)
	}
	return st, nil
}

func (s *DefaultSearchService) searchFailure(st entity.SearchType, err error) apierror.ErrorResponse {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// Callers walking away mid-search is normal, not worth an error log.
		log.Debugf("search %s abandoned: %v", st, err)
		s.Metrics.Searches.WithLabelValues(st.String(), "canceled").Inc()
		return apierror.RequestCanceledError
	}

	log.Errorf("search %s failed: %v", st, err)
	s.Metrics.Searches.WithLabelValues(st.String(), "failed").Inc()
	return apierror.SearchUnavailableError
}

// splitList accepts both repeated params and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, strings.ToLower(part))
			}
		}
	}
	return out
}

func filterByEntityType(entities []entity.Entity, types []string) []entity.Entity {
	if len(types) == 0 {
		return entities
	}

	allowed := make(map[entity.EntityType]bool, len(types))
	for _, t := range types {
		allowed[entity.EntityType(t)] = true
	}

	out := make([]entity.Entity, 0, len(entities))
	for _, e := range entities {
		if allowed[e.Type] {
			out = append(out, e)
		}
	}
	return out
}

func pageParams(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = contract.DefaultPageSize
	}
	if pageSize > contract.MaxPageSize {
		pageSize = contract.MaxPageSize
	}
	return page, pageSize
}

func paginate(entities []entity.Entity, page, pageSize int) []entity.Entity {
	start := (page - 1) * pageSize
	if start >= len(entities) {
		return []entity.Entity{}
	}
	end := min(start+pageSize, len(entities))
	return entities[start:end]
}
