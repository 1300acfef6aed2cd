package scoreshandlers

import (
	"context"
	"io"

	scoresservice "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/application"
	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	SubmitScoreFunc        func(ctx context.Context, req scoresservice.SubmissionRequest) (*scoresdomain.ScoreRecord, error)
	GetLeaderboardFunc     func(ctx context.Context, mode scoresdomain.Mode) (*scoresservice.LeaderboardView, error)
	CheckQualificationFunc func(ctx context.Context, score int) (*scoresdomain.Qualification, error)
	EnsureSchemaFunc       func(ctx context.Context) error
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) SubmitScore(ctx context.Context, req scoresservice.SubmissionRequest) (*scoresdomain.ScoreRecord, error) {
	f.record("SubmitScore")
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, req)
	}
	body, _ := io.ReadAll(req.Body)
	sub, err := scoresdomain.ParseSubmission(body)
	if err != nil {
		return nil, err
	}
	return &scoresdomain.ScoreRecord{ID: 1, Name: sub.Name, Score: sub.Score}, nil
}

func (f *FakeService) GetLeaderboard(ctx context.Context, mode scoresdomain.Mode) (*scoresservice.LeaderboardView, error) {
	f.record("GetLeaderboard")
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, mode)
	}
	return &scoresservice.LeaderboardView{Mode: mode}, nil
}

func (f *FakeService) CheckQualification(ctx context.Context, score int) (*scoresdomain.Qualification, error) {
	f.record("CheckQualification")
	if f.CheckQualificationFunc != nil {
		return f.CheckQualificationFunc(ctx, score)
	}
	return &scoresdomain.Qualification{Qualifies: true, Rank: 1}, nil
}

func (f *FakeService) EnsureSchema(ctx context.Context) error {
	f.record("EnsureSchema")
	if f.EnsureSchemaFunc != nil {
		return f.EnsureSchemaFunc(ctx)
	}
	return nil
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ scoresservice.Service = (*FakeService)(nil)
