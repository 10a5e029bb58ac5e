package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"Compass/internal/core/themeFeeds"

	"github.com/lib/pq"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so one repository
// implementation serves plain reads and unit-of-work transactions.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// maxBatchSize caps ANY($1) array parameters. A full feed page never exceeds it.
const maxBatchSize = themeFeeds.MaxPageLimit

// PostgreSQL error codes we classify
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pqError returns the *pq.Error in err's chain, or nil
func pqError(err error) *pq.Error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr
	}
	return nil
}

// isUniqueViolation reports whether err violates the named unique constraint.
// An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	pqErr := pqError(err)
	if pqErr == nil || string(pqErr.Code) != pgUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// isForeignKeyViolation reports whether err violates the named foreign key.
// An empty constraint matches any foreign key violation.
func isForeignKeyViolation(err error, constraint string) bool {
	pqErr := pqError(err)
	if pqErr == nil || string(pqErr.Code) != pgForeignKeyViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Warn("[DB] failed to close rows", "error", err)
	}
}
