package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// withTx runs fn in a transaction, committing on nil and rolling back otherwise.
// opts may be nil for the driver defaults.
func withTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
			slog.Error("[DB] failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// runInTx runs fn in a new transaction when q is a *sql.DB, or directly on q
// when q is already bound to one.
func runInTx(ctx context.Context, q dbtx, fn func(q dbtx) error) error {
	db, ok := q.(*sql.DB)
	if !ok {
		return fn(q)
	}
	return withTx(ctx, db, nil, func(tx *sql.Tx) error {
		return fn(tx)
	})
}
