package scoresmetrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheus(reg)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordOperationAttempt(ctx, "SubmitScore", "ScoreService")
	m.RecordOperationSuccess(ctx, "SubmitScore", "ScoreService")
	m.RecordOperationDuration(ctx, "SubmitScore", "ScoreService", 20*time.Millisecond)
	m.RecordSubmission(ctx, OutcomeAccepted)
	m.RecordSubmission(ctx, OutcomeRateLimited)
	m.RecordSubmission(ctx, OutcomeRateLimited)
	m.SetTrackedIdentifiers(7)

	pm := m.(*promMetrics)
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.operations.WithLabelValues("SubmitScore", "attempt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.operations.WithLabelValues("SubmitScore", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pm.submitted.WithLabelValues(OutcomeRateLimited)))
	assert.Equal(t, 7.0, testutil.ToFloat64(pm.tracked))
	assert.Equal(t, 1, testutil.CollectAndCount(pm.durations))
}

func TestNewPrometheus_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	assert.Error(t, err)
}

func TestNewPrometheus_NilRegistry(t *testing.T) {
	m, err := NewPrometheus(nil)
	require.NoError(t, err)
	assert.IsType(t, noop{}, m)
}
