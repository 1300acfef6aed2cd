package scoresmetrics

import (
	"context"
	"time"
)

type noop struct{}

// NewNoop returns metrics that record nothing.
func NewNoop() ScoreMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordSubmission(context.Context, string)                               {}
func (noop) SetTrackedIdentifiers(int)                                              {}
