package scoresmigrations

import (
	"context"
	"fmt"

	scoresdb "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating high_scores table...")

		// Not in a transaction: a duplicate-object error from a racing
		// EnsureSchema would abort it, and every statement is IF NOT EXISTS.
		return scoresdb.CreateSchema(ctx, db)
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping high_scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range scoresdb.DropStatements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to drop high score schema: %w", err)
				}
			}
			return nil
		})
	})
}
