// Package metrics exposes cryptokit counters in the Prometheus text format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	registry = prometheus.NewRegistry()

	operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptokit_operations_total",
		Help: "Number of pipeline operations executed, by operation and outcome.",
	}, []string{"operation", "outcome"})

	fetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptokit_fetch_requests_total",
		Help: "Number of challenge data downloads, by HTTP status class.",
	}, []string{"status"})

	fetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cryptokit_fetch_duration_seconds",
		Help:    "Latency of challenge data downloads.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	keySearches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptokit_key_searches_total",
		Help: "Number of key searches run, by kind and whether a key was found.",
	}, []string{"kind", "outcome"})

	candidates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cryptokit_candidates_scored_total",
		Help: "Number of candidate decryptions scored across all searches.",
	})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		operations,
		fetches,
		fetchLatency,
		keySearches,
		candidates,
	)
}

// Registry returns the registry holding every cryptokit collector.
func Registry() *prometheus.Registry { return registry }

// Handler serves the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// RecordOperation counts one executed pipeline operation.
func RecordOperation(name string, err error) {
	operations.WithLabelValues(name, outcome(err == nil)).Inc()
}

// RecordFetch counts a download. status is the HTTP status code, or 0 when
// no response arrived.
func RecordFetch(status int, took time.Duration) {
	fetches.WithLabelValues(statusClass(status)).Inc()
	fetchLatency.Observe(took.Seconds())
}

// RecordKeySearch counts a finished search of the given kind.
func RecordKeySearch(kind string, found bool) {
	keySearches.WithLabelValues(kind, outcome(found)).Inc()
}

// AddCandidates adds n scored candidates.
func AddCandidates(n int) {
	if n > 0 {
		candidates.Add(float64(n))
	}
}

func statusClass(status int) string {
	switch {
	case status <= 0:
		return "error"
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
