package testutils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// TruncateTables empties tables and resets their identity sequences.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf("%q", table)
	}
	query := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE"

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}

// SeedScore inserts a row with an explicit timestamp, bypassing the
// database default, so tests can place records on chosen dates.
func SeedScore(ctx context.Context, db *bun.DB, name string, score int, createdAt time.Time) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO high_scores (name, score, created_at) VALUES (?, ?, ?)",
		name, score, createdAt)
	if err != nil {
		return fmt.Errorf("failed to seed score %s/%d: %w", name, score, err)
	}
	return nil
}
