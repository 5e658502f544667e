package service

import (
	"context"
	"fmt"
	"time"

	"entitysearch/cmd/internal/contract"
	"entitysearch/cmd/internal/domain/entity"
	"entitysearch/cmd/internal/history"
	"entitysearch/cmd/internal/infrastructure/aws/storage"
	"entitysearch/cmd/internal/metrics"
	"entitysearch/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type HistoryStore interface {
	Add(ctx context.Context, params history.AddParams) (entity.RecentSearch, error)
	List() []entity.RecentSearch
	Clear(ctx context.Context) error
	Snapshot() ([]byte, error)
}

type DefaultHistoryService struct {
	Store    HistoryStore
	Exporter storage.S3Client
	Metrics  *metrics.Metrics
	now      func() time.Time
}

// NewHistoryService wires the recent searches store. exporter may be nil
// when no export bucket is configured.
func NewHistoryService(store HistoryStore, exporter storage.S3Client, m *metrics.Metrics) *DefaultHistoryService {
	m.HistoryEntries.Set(float64(len(store.List())))
	return &DefaultHistoryService{
		Store:    store,
		Exporter: exporter,
		Metrics:  m,
		now:      time.Now,
	}
}

// Record adds an entry to the history. A failed write is logged and
// counted, never returned.
func (h *DefaultHistoryService) Record(ctx context.Context, params history.AddParams) {
	if _, err := h.Store.Add(ctx, params); err != nil {
		log.Errorf("failed to record recent search %s: %v", params.Type, err)
		h.Metrics.HistoryWriteFailures.Inc()
		return
	}
	h.Metrics.HistoryEntries.Set(float64(len(h.Store.List())))
}

// GetRecentSearches returns the history newest first.
func (h *DefaultHistoryService) GetRecentSearches() *contract.RecentSearchesResponse {
	return &contract.RecentSearchesResponse{
		Searches: history.SortByRecency(h.Store.List()),
	}
}

func (h *DefaultHistoryService) ClearRecentSearches(ctx context.Context) apierror.ErrorResponse {
	if err := h.Store.Clear(ctx); err != nil {
		log.Errorf("failed to clear recent searches: %v", err)
		return apierror.InternalServerError
	}
	h.Metrics.HistoryEntries.Set(0)
	return nil
}

// ExportRecentSearches uploads the persisted representation of the history
// to the export bucket.
func (h *DefaultHistoryService) ExportRecentSearches(ctx context.Context) (*contract.ExportResponse, apierror.ErrorResponse) {
	if h.Exporter == nil {
		return nil, apierror.ExportUnavailableError
	}

	entries := len(h.Store.List())
	data, err := h.Store.Snapshot()
	if err != nil {
		log.Errorf("failed to snapshot recent searches: %v", err)
		return nil, apierror.InternalServerError
	}

	filename := fmt.Sprintf("recent-searches-%s.json", h.now().UTC().Format("20060102T150405Z"))
	key, err := h.Exporter.UploadFile(ctx, data, filename)
	if err != nil {
		log.Errorf("failed to export recent searches: %v", err)
		return nil, apierror.InternalServerError
	}
	return &contract.ExportResponse{Key: key, Entries: entries}, nil
}
