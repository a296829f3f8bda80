package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build isolated instances.
// All record helpers are nil-safe: a nil *Metrics disables collection.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	matchDuration    prometheus.Histogram
	matchesComputed  prometheus.Counter
	candidatesScored prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trademart_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		matchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trademart_match_duration_seconds",
			Help:    "End-to-end duration of one match orchestration.",
			Buckets: prometheus.DefBuckets,
		}),
		matchesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trademart_matches_computed_total",
			Help: "Match results returned to callers.",
		}),
		candidatesScored: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trademart_match_candidates_scored",
			Help:    "Candidates scored per match request.",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		}),
	}

	reg.MustRegister(m.httpRequests, m.matchDuration, m.matchesComputed, m.candidatesScored)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func (m *Metrics) RecordMatch(elapsed time.Duration, candidates, returned int) {
	if m == nil {
		return
	}
	m.matchDuration.Observe(elapsed.Seconds())
	m.candidatesScored.Observe(float64(candidates))
	m.matchesComputed.Add(float64(returned))
}
