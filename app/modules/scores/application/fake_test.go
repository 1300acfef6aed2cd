package scoresservice

import (
	"context"
	"sync"
	"time"

	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
	scoresdb "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Score Repo
// ------------------------

type FakeScoreRepo struct {
	mu    sync.Mutex
	trace []string

	InsertFunc           func(ctx context.Context, db bun.IDB, name string, score int) (*scoresdomain.ScoreRecord, error)
	TopScoresBetweenFunc func(ctx context.Context, db bun.IDB, from, to time.Time, limit int) ([]scoresdomain.ScoreRecord, error)
	TopScoresFunc        func(ctx context.Context, db bun.IDB, limit int) ([]scoresdomain.ScoreRecord, error)
	DailyWinnersFunc     func(ctx context.Context, db bun.IDB, limit int) ([]scoresdomain.DailyWinner, error)
	EnsureSchemaFunc     func(ctx context.Context, db bun.IDB) error
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{
		trace: []string{},
	}
}

func (f *FakeScoreRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeScoreRepo) Insert(ctx context.Context, db bun.IDB, name string, score int) (*scoresdomain.ScoreRecord, error) {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, name, score)
	}
	return &scoresdomain.ScoreRecord{ID: 1, Name: name, Score: score, CreatedAt: time.Now().UTC()}, nil
}

func (f *FakeScoreRepo) TopScoresBetween(ctx context.Context, db bun.IDB, from, to time.Time, limit int) ([]scoresdomain.ScoreRecord, error) {
	f.record("TopScoresBetween")
	if f.TopScoresBetweenFunc != nil {
		return f.TopScoresBetweenFunc(ctx, db, from, to, limit)
	}
	return nil, nil
}

func (f *FakeScoreRepo) TopScores(ctx context.Context, db bun.IDB, limit int) ([]scoresdomain.ScoreRecord, error) {
	f.record("TopScores")
	if f.TopScoresFunc != nil {
		return f.TopScoresFunc(ctx, db, limit)
	}
	return nil, nil
}

func (f *FakeScoreRepo) DailyWinners(ctx context.Context, db bun.IDB, limit int) ([]scoresdomain.DailyWinner, error) {
	f.record("DailyWinners")
	if f.DailyWinnersFunc != nil {
		return f.DailyWinnersFunc(ctx, db, limit)
	}
	return nil, nil
}

func (f *FakeScoreRepo) EnsureSchema(ctx context.Context, db bun.IDB) error {
	f.record("EnsureSchema")
	if f.EnsureSchemaFunc != nil {
		return f.EnsureSchemaFunc(ctx, db)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeScoreRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ scoresdb.Repository = (*FakeScoreRepo)(nil)

// ------------------------
// Fake Rate Limiter
// ------------------------

type FakeLimiter struct {
	AllowFunc func(key string) (bool, time.Duration)
	keys      []string
}

func (f *FakeLimiter) Allow(key string) (bool, time.Duration) {
	f.keys = append(f.keys, key)
	if f.AllowFunc != nil {
		return f.AllowFunc(key)
	}
	return true, 0
}

func (f *FakeLimiter) Len() int { return len(f.keys) }

var _ RateLimiter = (*FakeLimiter)(nil)
