package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	scoresmigrations "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/infrastructure/repositories/migrations"
	"github.com/hykocx/grabsanta.hyko.dev/db/bundb"
	"github.com/hykocx/grabsanta.hyko.dev/integration_tests/containers"
)

// TestEnvironment holds the shared Postgres container and its migrated pool.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	ConnStr     string
	DB          *bun.DB
}

var (
	sharedEnv     *TestEnvironment
	sharedEnvErr  error
	sharedEnvOnce sync.Once
)

// GetOrCreateTestEnv returns the package-wide environment, starting the
// container on first use. Tests are skipped under -short, when
// SKIP_INTEGRATION_TESTS is set, or when no container runtime is available.
func GetOrCreateTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()

	if testing.Short() || os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		t.Skip("skipping integration test")
	}

	sharedEnvOnce.Do(func() {
		sharedEnv, sharedEnvErr = newTestEnvironment(context.Background())
	})
	if sharedEnvErr != nil {
		t.Skipf("integration environment unavailable: %v", sharedEnvErr)
	}
	return sharedEnv
}

func newTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	pgContainer, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	db := bundb.BunDB(sqlDB)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:         ctx,
		PgContainer: pgContainer,
		ConnStr:     connStr,
		DB:          db,
	}, nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, scoresmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run scores migrations: %w", err)
	}
	if group.IsZero() {
		log.Println("No scores migrations to run")
	} else {
		log.Printf("Ran scores migrations group #%d", group.ID)
	}
	return nil
}

// Shutdown releases the shared environment if one was started.
func Shutdown(ctx context.Context) {
	if sharedEnv == nil {
		return
	}
	if err := sharedEnv.DB.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}
	if err := sharedEnv.PgContainer.Terminate(ctx); err != nil {
		log.Printf("Error terminating Postgres container: %v", err)
	}
}
