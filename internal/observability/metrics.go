package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	submissionAttemptsTotal *prometheus.CounterVec
	requestLatencySeconds   *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors for the engine.
func RegisterMetrics() {
	registerOnce.Do(func() {
		submissionAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contestboard_submission_attempts_total",
			Help: "Submission attempts by outcome.",
		}, []string{"kind", "outcome"})

		requestLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contestboard_request_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(submissionAttemptsTotal, requestLatencySeconds)
	})
}

// SubmissionAttempts exposes the attempt counter.
func SubmissionAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionAttemptsTotal
}

// RequestLatency exposes the latency histogram.
func RequestLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return requestLatencySeconds
}
