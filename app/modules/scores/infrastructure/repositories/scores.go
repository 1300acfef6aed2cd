package scoresdb

import (
	"context"
	"fmt"
	"time"

	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new high score repository. db may be nil when no
// database is configured; every call then fails with ErrNotConfigured.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) (bun.IDB, error) {
	if db != nil {
		return db, nil
	}
	if r.db == nil {
		return nil, ErrNotConfigured
	}
	return r.db, nil
}

// Insert stores one accepted submission.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, name string, score int) (*scoresdomain.ScoreRecord, error) {
	db, err := r.resolveDB(db)
	if err != nil {
		return nil, err
	}

	row := &HighScore{Name: name, Score: score}
	if _, err := db.NewInsert().
		Model(row).
		Returning("id, created_at").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to insert high score: %w", err)
	}
	if row.ID == 0 {
		return nil, ErrInsertFailed
	}

	rec := row.toDomain()
	return &rec, nil
}

// TopScoresBetween returns the best distinct (name, score) pairs created in [from, to).
func (r *Impl) TopScoresBetween(ctx context.Context, db bun.IDB, from, to time.Time, limit int) ([]scoresdomain.ScoreRecord, error) {
	db, err := r.resolveDB(db)
	if err != nil {
		return nil, err
	}

	distinct := distinctPairs(db).
		Where("hs.created_at >= ?", from).
		Where("hs.created_at < ?", to)

	rows, err := r.top(ctx, db, distinct, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list high scores between %s and %s: %w", from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}
	return rows, nil
}

// TopScores returns the best distinct (name, score) pairs of all time.
func (r *Impl) TopScores(ctx context.Context, db bun.IDB, limit int) ([]scoresdomain.ScoreRecord, error) {
	db, err := r.resolveDB(db)
	if err != nil {
		return nil, err
	}

	rows, err := r.top(ctx, db, distinctPairs(db), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list all-time high scores: %w", err)
	}
	return rows, nil
}

// distinctPairs keeps the earliest row of every (name, score) pair.
func distinctPairs(db bun.IDB) *bun.SelectQuery {
	return db.NewSelect().
		Model((*HighScore)(nil)).
		DistinctOn("hs.name, hs.score").
		OrderExpr("hs.name, hs.score, hs.created_at ASC, hs.id ASC")
}

func (r *Impl) top(ctx context.Context, db bun.IDB, distinct *bun.SelectQuery, limit int) ([]scoresdomain.ScoreRecord, error) {
	var rows []HighScore
	q := db.NewSelect().
		TableExpr("(?) AS best", distinct).
		ColumnExpr("best.*").
		OrderExpr("best.score DESC, best.created_at ASC, best.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

const dailyWinnersQuery = `
WITH ranked AS (
	SELECT id, name, score, created_at,
		to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS game_date,
		ROW_NUMBER() OVER (
			PARTITION BY (created_at AT TIME ZONE 'UTC')::date
			ORDER BY score DESC, created_at ASC, id ASC
		) AS rn
	FROM high_scores
)
SELECT id, name, score, created_at, game_date
FROM ranked
WHERE rn = 1
ORDER BY game_date DESC
LIMIT ?`

// DailyWinners returns the top record of each UTC date, newest first.
func (r *Impl) DailyWinners(ctx context.Context, db bun.IDB, limit int) ([]scoresdomain.DailyWinner, error) {
	db, err := r.resolveDB(db)
	if err != nil {
		return nil, err
	}

	var rows []dailyWinnerRow
	if err := db.NewRaw(dailyWinnersQuery, limit).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to list daily winners: %w", err)
	}

	winners := make([]scoresdomain.DailyWinner, 0, len(rows))
	for _, row := range rows {
		winners = append(winners, scoresdomain.DailyWinner{
			ScoreRecord: scoresdomain.ScoreRecord{
				ID:        row.ID,
				Name:      row.Name,
				Score:     row.Score,
				CreatedAt: row.CreatedAt.UTC(),
			},
			GameDate: row.GameDate,
		})
	}
	return winners, nil
}

// EnsureSchema creates the high score table and indexes if needed.
func (r *Impl) EnsureSchema(ctx context.Context, db bun.IDB) error {
	db, err := r.resolveDB(db)
	if err != nil {
		return err
	}
	return CreateSchema(ctx, db)
}
