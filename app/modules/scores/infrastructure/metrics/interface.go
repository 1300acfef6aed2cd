package scoresmetrics

import (
	"context"
	"time"
)

// Submission outcomes.
const (
	OutcomeAccepted           = "accepted"
	OutcomeBadRequest         = "bad_request"
	OutcomePayloadTooLarge    = "payload_too_large"
	OutcomeRateLimited        = "rate_limited"
	OutcomeStorageUnavailable = "storage_unavailable"
)

// ScoreMetrics records what the scores module does.
type ScoreMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)

	// RecordSubmission counts one POST outcome.
	RecordSubmission(ctx context.Context, outcome string)
	// SetTrackedIdentifiers reports how many clients the submission limiter currently remembers.
	SetTrackedIdentifiers(n int)
}
