package scoresservice

import (
	"context"
	"io"
	"time"

	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
)

// Service is the leaderboard's application boundary.
type Service interface {
	// SubmitScore runs a submission through the gate and stores it.
	SubmitScore(ctx context.Context, req SubmissionRequest) (*scoresdomain.ScoreRecord, error)

	// GetLeaderboard returns one leaderboard view.
	GetLeaderboard(ctx context.Context, mode scoresdomain.Mode) (*LeaderboardView, error)

	// CheckQualification tells whether score would enter today's leaderboard.
	CheckQualification(ctx context.Context, score int) (*scoresdomain.Qualification, error)

	// EnsureSchema prepares storage. It is safe to call repeatedly and concurrently.
	EnsureSchema(ctx context.Context) error
}

// RateLimiter bounds submissions per client identifier.
type RateLimiter interface {
	Allow(key string) (bool, time.Duration)
	Len() int
}

// SubmissionRequest is a raw POST as seen by the gate.
type SubmissionRequest struct {
	// ClientID identifies the submitter for rate limiting.
	ClientID string
	// DeclaredLength is the Content-Length header, or -1 when absent.
	DeclaredLength int64
	Body           io.Reader
}

// LeaderboardView holds Scores for the today and all-time modes and
// DailyWinners for the daily-winners mode.
type LeaderboardView struct {
	Mode         scoresdomain.Mode
	Scores       []scoresdomain.ScoreRecord
	DailyWinners []scoresdomain.DailyWinner
}
