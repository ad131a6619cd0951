package usecase

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"meeting-archaeologist/internal/extraction"
)

const (
	attemptSucceeded      = "succeeded"
	attemptInvalid        = "validation_failed"
	attemptGeneratorError = "generator_error"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the extraction loop.
type Metrics struct {
	Attempts *prometheus.CounterVec
	Requests *prometheus.CounterVec
	Retries  prometheus.Histogram
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the extraction metrics once per process.
//
// Metrics:
//   - extraction_attempts_total{result}
//   - extraction_requests_total{outcome,code}
//   - extraction_retries
//   - extraction_duration_seconds{outcome}
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			Attempts: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "extraction_attempts_total",
					Help: "Total number of generator attempts by result",
				},
				[]string{"result"},
			),
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "extraction_requests_total",
					Help: "Total number of extraction requests by terminal outcome",
				},
				[]string{"outcome", "code"},
			),
			Retries: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "extraction_retries",
					Help:    "Retries spent per extraction request",
					Buckets: []float64{0, 1, 2, 3, 5, 8},
				},
			),
			Duration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "extraction_duration_seconds",
					Help:    "End to end extraction latency in seconds",
					Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
				},
				[]string{"outcome"},
			),
		}
	})
	return globalMetrics
}

func (m *Metrics) observe(outcome extraction.Outcome, code extraction.FailureCode, retries int, elapsed time.Duration) {
	m.Requests.WithLabelValues(string(outcome), string(code)).Inc()
	m.Retries.Observe(float64(retries))
	m.Duration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}
