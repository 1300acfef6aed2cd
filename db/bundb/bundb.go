// db/bundb/bundb.go
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hykocx/grabsanta.hyko.dev/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Open creates the process-wide bounded connection pool. No connection is
// made until first use. An empty DSN returns a nil DB and no error so the
// server can start without storage.
func Open(cfg config.PostgresConfig) (db *bun.DB, err error) {
	if cfg.DSN == "" {
		return nil, nil
	}

	// pgdriver panics on a DSN it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			db, err = nil, fmt.Errorf("invalid postgres DSN: %v", r)
		}
	}()

	opts := []pgdriver.Option{pgdriver.WithDSN(cfg.DSN)}
	if cfg.DialTimeout > 0 {
		opts = append(opts, pgdriver.WithDialTimeout(cfg.DialTimeout))
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return BunDB(sqldb), nil
}

// BunDB returns a new bun.DB for given sql.DB connection pool.
func BunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

// Ping checks connectivity, bounded by the dial timeout.
func Ping(ctx context.Context, db *bun.DB, cfg config.PostgresConfig) error {
	if db == nil {
		return nil
	}
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
