package scoresdb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotConfigured means no database connection was provided, typically
	// because DATABASE_URL is unset.
	ErrNotConfigured = errors.New("database not configured")

	// ErrInsertFailed indicates the store did not return the created row.
	ErrInsertFailed = errors.New("insert returned no row")
)
