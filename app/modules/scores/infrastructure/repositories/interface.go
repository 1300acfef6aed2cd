package scoresdb

import (
	"context"
	"time"

	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for high score persistence. Every method
// accepts an optional bun.IDB so callers can run it inside a transaction; nil
// means the repository's own connection.
type Repository interface {
	// Insert stores one accepted submission and returns it with the id and
	// creation time assigned by the database.
	Insert(ctx context.Context, db bun.IDB, name string, score int) (*scoresdomain.ScoreRecord, error)

	// TopScoresBetween returns at most limit records created in [from, to),
	// one per distinct (name, score) pair, best first.
	TopScoresBetween(ctx context.Context, db bun.IDB, from, to time.Time, limit int) ([]scoresdomain.ScoreRecord, error)

	// TopScores is TopScoresBetween over the whole history.
	TopScores(ctx context.Context, db bun.IDB, limit int) ([]scoresdomain.ScoreRecord, error)

	// DailyWinners returns the best record of each UTC date, newest date first.
	DailyWinners(ctx context.Context, db bun.IDB, limit int) ([]scoresdomain.DailyWinner, error)

	// EnsureSchema creates the table and indexes if they do not exist.
	EnsureSchema(ctx context.Context, db bun.IDB) error
}
