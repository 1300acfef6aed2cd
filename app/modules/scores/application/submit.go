package scoresservice

import (
	"context"
	"errors"
	"io"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
	scoresmetrics "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/metrics"
	"github.com/uptrace/bun"
)

type submitResult = results.OperationResult[*scoresdomain.ScoreRecord, error]

// SubmitScore applies the gate in order: rate limit, declared size, read
// size, body validation. Only a fully validated submission reaches the store.
func (s *ScoreService) SubmitScore(ctx context.Context, req SubmissionRequest) (*scoresdomain.ScoreRecord, error) {
	result, err := withTelemetry(s, ctx, "SubmitScore", req.ClientID, func(ctx context.Context) (submitResult, error) {
		return s.submitScoreLogic(ctx, req)
	})

	rec, err := unwrap(result, err)
	s.metrics.RecordSubmission(ctx, submissionOutcome(err))
	return rec, err
}

func (s *ScoreService) submitScoreLogic(ctx context.Context, req SubmissionRequest) (submitResult, error) {
	allowed, retryAfter := s.limiter.Allow(req.ClientID)
	s.metrics.SetTrackedIdentifiers(s.limiter.Len())
	if !allowed {
		return results.FailureResult[*scoresdomain.ScoreRecord, error](scoresdomain.NewRateLimited(retryAfter)), nil
	}

	if req.DeclaredLength > scoresdomain.MaxBodyBytes {
		return results.FailureResult[*scoresdomain.ScoreRecord, error](scoresdomain.NewPayloadTooLarge()), nil
	}

	body, err := readBody(req.Body)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read submission body",
			attr.String("client_id", req.ClientID),
			attr.Error(err),
		)
		return results.FailureResult[*scoresdomain.ScoreRecord, error](scoresdomain.NewInvalidJSON()), nil
	}
	if len(body) > scoresdomain.MaxBodyBytes {
		return results.FailureResult[*scoresdomain.ScoreRecord, error](scoresdomain.NewPayloadTooLarge()), nil
	}

	sub, err := scoresdomain.ParseSubmission(body)
	if err != nil {
		return results.FailureResult[*scoresdomain.ScoreRecord, error](err), nil
	}

	// A started write finishes even if the client goes away.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
	defer cancel()

	result, err := runInTx(s, writeCtx, func(ctx context.Context, db bun.IDB) (submitResult, error) {
		rec, err := s.repo.Insert(ctx, db, sub.Name, sub.Score)
		if err != nil {
			return submitResult{}, storageError(scoresdomain.MsgSaveFailed, err)
		}
		return results.SuccessResult[*scoresdomain.ScoreRecord, error](rec), nil
	})
	if err != nil {
		return submitResult{}, err
	}

	s.logger.InfoContext(ctx, "Score accepted",
		attr.String("client_id", req.ClientID),
		attr.String("name", sub.Name),
		attr.Int("score", sub.Score),
	)
	return result, nil
}

func readBody(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return io.ReadAll(io.LimitReader(r, scoresdomain.MaxBodyBytes+1))
}

// storageError maps any store failure to StorageUnavailable, keeping the
// cause. Players only ever see msg.
func storageError(msg string, err error) error {
	return scoresdomain.NewStorageUnavailable(msg, err)
}

func submissionOutcome(err error) string {
	switch {
	case err == nil:
		return scoresmetrics.OutcomeAccepted
	case errors.Is(err, scoresdomain.ErrRateLimited):
		return scoresmetrics.OutcomeRateLimited
	case errors.Is(err, scoresdomain.ErrPayloadTooLarge):
		return scoresmetrics.OutcomePayloadTooLarge
	case errors.Is(err, scoresdomain.ErrBadRequest):
		return scoresmetrics.OutcomeBadRequest
	default:
		return scoresmetrics.OutcomeStorageUnavailable
	}
}
