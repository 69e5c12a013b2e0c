// Package metrics defines the Prometheus collectors for the document search
// backend and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the services record into.
type Metrics struct {
	UploadsTotal        *prometheus.CounterVec
	SearchesTotal       *prometheus.CounterVec
	RemoteFailuresTotal *prometheus.CounterVec
	SearchResultsCount  prometheus.Histogram
	IngestPending       prometheus.Gauge
}

// New creates the collectors and registers them on reg. Passing a private
// registry keeps tests from tripping duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docsearch_uploads_total",
				Help: "Documents ingested, by category.",
			},
			[]string{"category"},
		),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docsearch_searches_total",
				Help: "Search requests served, by category.",
			},
			[]string{"category"},
		),
		RemoteFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docsearch_remote_failures_total",
				Help: "Remote engine failures, by pipeline stage (store, index, search).",
			},
			[]string{"stage"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docsearch_search_results_count",
				Help:    "Category-filtered results returned per search.",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
			},
		),
		IngestPending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docsearch_ingest_pending",
				Help: "Ingestions stuck before manifest registration, awaiting manual reconciliation.",
			},
		),
	}

	reg.MustRegister(
		m.UploadsTotal,
		m.SearchesTotal,
		m.RemoteFailuresTotal,
		m.SearchResultsCount,
		m.IngestPending,
	)

	return m
}

// Handler returns the scrape handler for the registry the collectors live in.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
