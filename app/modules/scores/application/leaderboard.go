package scoresservice

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
)

type viewResult = results.OperationResult[*LeaderboardView, error]

// GetLeaderboard reads one view. The store pre-filters, the ranking engine
// has the final word on order and size.
func (s *ScoreService) GetLeaderboard(ctx context.Context, mode scoresdomain.Mode) (*LeaderboardView, error) {
	result, err := withTelemetry(s, ctx, "GetLeaderboard", mode.String(), func(ctx context.Context) (viewResult, error) {
		return s.getLeaderboardLogic(ctx, mode)
	})
	return unwrap(result, err)
}

func (s *ScoreService) getLeaderboardLogic(ctx context.Context, mode scoresdomain.Mode) (viewResult, error) {
	view := &LeaderboardView{Mode: mode}

	switch mode {
	case scoresdomain.ModeDailyWinners:
		winners, err := s.repo.DailyWinners(ctx, nil, scoresdomain.DailyWinnersLimit)
		if err != nil {
			return viewResult{}, storageError(scoresdomain.MsgFetchFailed, err)
		}
		records := make([]scoresdomain.ScoreRecord, len(winners))
		for i, w := range winners {
			records[i] = w.ScoreRecord
		}
		view.DailyWinners = scoresdomain.DailyWinners(records)

	case scoresdomain.ModeAllTime:
		records, err := s.repo.TopScores(ctx, nil, scoresdomain.LeaderboardSize)
		if err != nil {
			return viewResult{}, storageError(scoresdomain.MsgFetchFailed, err)
		}
		view.Scores = scoresdomain.RankLeaderboard(records)

	default:
		board, err := s.todayBoard(ctx)
		if err != nil {
			return viewResult{}, err
		}
		view.Scores = board
	}

	return results.SuccessResult[*LeaderboardView, error](view), nil
}

func (s *ScoreService) todayBoard(ctx context.Context) ([]scoresdomain.ScoreRecord, error) {
	from, to := scoresdomain.DayBounds(s.clock.Now())
	records, err := s.repo.TopScoresBetween(ctx, nil, from, to, scoresdomain.LeaderboardSize)
	if err != nil {
		return nil, storageError(scoresdomain.MsgFetchFailed, err)
	}
	return scoresdomain.RankLeaderboard(records), nil
}

type qualifyResult = results.OperationResult[*scoresdomain.Qualification, error]

// CheckQualification ranks score against today's leaderboard.
func (s *ScoreService) CheckQualification(ctx context.Context, score int) (*scoresdomain.Qualification, error) {
	result, err := withTelemetry(s, ctx, "CheckQualification", "", func(ctx context.Context) (qualifyResult, error) {
		if err := scoresdomain.ValidateScore(score); err != nil {
			return results.FailureResult[*scoresdomain.Qualification, error](err), nil
		}
		board, err := s.todayBoard(ctx)
		if err != nil {
			return qualifyResult{}, err
		}
		q := scoresdomain.Qualify(board, score)
		return results.SuccessResult[*scoresdomain.Qualification, error](&q), nil
	})
	return unwrap(result, err)
}
