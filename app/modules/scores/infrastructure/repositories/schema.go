package scoresdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// TableName is the table holding every accepted submission.
const TableName = "high_scores"

// SchemaStatements create the high score table and its indexes. They are
// idempotent and shared by EnsureSchema and the bun migration.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS high_scores (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(10) NOT NULL,
		score INTEGER NOT NULL CHECK (score >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_high_scores_score ON high_scores (score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_high_scores_created_at ON high_scores (created_at)`,
}

// DropStatements undo SchemaStatements.
var DropStatements = []string{
	`DROP INDEX IF EXISTS idx_high_scores_created_at`,
	`DROP INDEX IF EXISTS idx_high_scores_score`,
	`DROP TABLE IF EXISTS high_scores`,
}

// Postgres codes raised when two cold starts race on CREATE ... IF NOT EXISTS.
const (
	codeDuplicateTable  = "42P07"
	codeUniqueViolation = "23505"
)

// CreateSchema runs SchemaStatements on db, treating concurrent-creation
// races as success.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, stmt := range SchemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if IsAlreadyExists(err) {
				continue
			}
			return fmt.Errorf("failed to create high score schema: %w", err)
		}
	}
	return nil
}

// IsAlreadyExists reports whether err is a Postgres duplicate-object error
// from either the pgdriver or the pgx driver.
func IsAlreadyExists(err error) bool {
	var code string

	var pgErr pgdriver.Error
	var pgxErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		code = pgErr.Field('C')
	case errors.As(err, &pgxErr):
		code = pgxErr.Code
	default:
		return false
	}

	return code == codeDuplicateTable || code == codeUniqueViolation
}
