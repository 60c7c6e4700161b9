package transcription

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorly_gateway_requests_total",
			Help: "Remote transcription service calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tutorly_gateway_request_duration_seconds",
			Help:    "Latency of remote transcription service calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observeRequest(operation, outcome string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(operation, outcome).Inc()
	requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
