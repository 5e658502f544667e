package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the search service.
type Metrics struct {
	Searches             *prometheus.CounterVec
	SearchLatency        prometheus.Histogram
	ValidationFailures   *prometheus.CounterVec
	Suggestions          *prometheus.CounterVec
	HistoryEntries       prometheus.Gauge
	HistoryWriteFailures prometheus.Counter
	CompanyLookups       *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "entitysearch_searches_total",
			Help: "Total number of full searches, labeled by search type and outcome",
		}, []string{"type", "outcome"}),
		SearchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "entitysearch_search_latency_seconds",
			Help:    "Latency of full searches in seconds, including simulated backend delay",
			Buckets: prometheus.DefBuckets,
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "entitysearch_validation_failures_total",
			Help: "Total number of rejected search values, labeled by search type",
		}, []string{"type"}),
		Suggestions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "entitysearch_suggestions_total",
			Help: "Total number of predictive suggestion requests, labeled by outcome",
		}, []string{"outcome"}),
		HistoryEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "entitysearch_history_entries",
			Help: "Current number of entries in the recent searches history",
		}),
		HistoryWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "entitysearch_history_write_failures_total",
			Help: "Total number of recent searches that could not be persisted",
		}),
		CompanyLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "entitysearch_company_lookups_total",
			Help: "Total number of CNPJ registry lookups, labeled by source",
		}, []string{"source"}),
	}
}
