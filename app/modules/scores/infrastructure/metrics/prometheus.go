package scoresmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "grabsanta"

type promMetrics struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	submitted  *prometheus.CounterVec
	tracked    prometheus.Gauge
}

// NewPrometheus registers the scores collectors on reg. A nil registry falls
// back to the noop implementation.
func NewPrometheus(reg prometheus.Registerer) (ScoreMetrics, error) {
	if reg == nil {
		return NewNoop(), nil
	}

	m := &promMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scores",
			Name:      "operations_total",
			Help:      "Service operations by outcome (attempt, success, failure).",
		}, []string{"operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scores",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scores",
			Name:      "submissions_total",
			Help:      "Score submissions by outcome.",
		}, []string{"outcome"}),
		tracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scores",
			Name:      "ratelimit_tracked_identifiers",
			Help:      "Client identifiers currently held by the submission rate limiter.",
		}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.durations, m.submitted, m.tracked} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *promMetrics) RecordOperationAttempt(_ context.Context, operation, _ string) {
	m.operations.WithLabelValues(operation, "attempt").Inc()
}

func (m *promMetrics) RecordOperationSuccess(_ context.Context, operation, _ string) {
	m.operations.WithLabelValues(operation, "success").Inc()
}

func (m *promMetrics) RecordOperationFailure(_ context.Context, operation, _ string) {
	m.operations.WithLabelValues(operation, "failure").Inc()
}

func (m *promMetrics) RecordOperationDuration(_ context.Context, operation, _ string, d time.Duration) {
	m.durations.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *promMetrics) RecordSubmission(_ context.Context, outcome string) {
	m.submitted.WithLabelValues(outcome).Inc()
}

func (m *promMetrics) SetTrackedIdentifiers(n int) {
	m.tracked.Set(float64(n))
}
