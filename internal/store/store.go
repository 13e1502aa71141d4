// Package store wraps the Postgres collaborators of the pipeline: the
// unified respondent table, the folio/results table, the recommendation
// reference, and the run records the batch writes.
//
// Dependency rule: store imports survey and report for their row types
// only. It never imports aggregate, worker, or api.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Store holds the connection pool. The operation files (sources.go,
// runs.go) attach methods to this type.
type Store struct {
	pool *sql.DB
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// New wraps an already-open pool. The pool must be verified (e.g. via
// PingContext) before calling New.
func New(pool *sql.DB) *Store {
	return &Store{pool: pool}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// txFunc receives a transaction and returns an error. Returning a
// non-nil error causes withTx to roll back automatically.
type txFunc func(ctx context.Context, tx *sql.Tx) error

// withTx begins a transaction, passes it to fn, and commits on success
// or rolls back on any error (including panics).
//
// Serializable isolation is used because the run writes follow a
// read-then-write pattern (latest run lookup before insert). Callers
// that need a different isolation level should open their own
// transaction.
func (s *Store) withTx(ctx context.Context, fn txFunc) error {
	tx, err := s.pool.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}

	// Roll back on panic so the connection is never left in a broken state.
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // re-panic after rollback
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			// Wrap both errors so the caller sees both failure reasons.
			return fmt.Errorf("store: fn error: %w; rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit transaction: %w", err)
	}
	return nil
}

// EnsureSchema creates the run tables the pipeline owns. The respondent,
// folio, and recommendation tables belong to the upstream loaders and
// are never created here.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS pipeline_runs (
	id             uuid PRIMARY KEY,
	started_at     timestamptz NOT NULL,
	finished_at    timestamptz NOT NULL,
	source_count   integer NOT NULL,
	instance_count integer NOT NULL,
	workbook       jsonb
)`
	if _, err := s.pool.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("store: ensure schema: %w", err)
	}
	return nil
}
