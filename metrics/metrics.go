// Package metrics holds the Prometheus collectors shared by the catalog client
// and the browse session.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
	OutcomeBusy        = "busy"
	OutcomeSuperseded  = "superseded"
)

// Recorder owns a registry and the collectors registered on it.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	APIRequests     *prometheus.CounterVec
	APIDuration     *prometheus.HistogramVec
	SessionOps      *prometheus.CounterVec
	MoviesDisplayed prometheus.Gauge
}

// New creates a Recorder with its own registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		APIRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marquee_catalog_requests_total",
				Help: "Count of catalog API calls",
			},
			[]string{"endpoint", "outcome"},
		),
		APIDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marquee_catalog_request_duration_seconds",
				Help:    "Time taken by catalog API calls",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"endpoint"},
		),
		SessionOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marquee_browse_operations_total",
				Help: "Count of browse session operations",
			},
			[]string{"operation", "outcome"},
		),
		MoviesDisplayed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "marquee_browse_movies_accumulated",
				Help: "Movies accumulated in the current browse cycle",
			},
		),
	}

	r.registry.MustRegister(
		r.APIRequests,
		r.APIDuration,
		r.SessionOps,
		r.MoviesDisplayed,
		collectors.NewGoCollector(),
	)

	return r
}

// ObserveRequest records one catalog call
func (r *Recorder) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.APIRequests.WithLabelValues(endpoint, outcome).Inc()
	r.APIDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveSession records one session operation and the resulting accumulation size
func (r *Recorder) ObserveSession(operation, outcome string, accumulated int) {
	if r == nil {
		return
	}
	r.SessionOps.WithLabelValues(operation, outcome).Inc()
	r.MoviesDisplayed.Set(float64(accumulated))
}

// Handler exposes the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
