package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Run is one persisted batch run: identity, timing, input counts, and
// the workbook snapshot the HTTP layer serves.
type Run struct {
	ID            uuid.UUID
	StartedAt     time.Time
	FinishedAt    time.Time
	SourceCount   int
	InstanceCount int
	Workbook      pqtype.NullRawMessage
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrNoRuns is returned by LatestRun before the first batch has been
// persisted.
var ErrNoRuns = errors.New("store: no pipeline runs recorded")

// ─── METHODS ─────────────────────────────────────────────────────────────────

// SaveRun persists a completed batch run with its workbook snapshot.
// A nil snapshot stores SQL NULL.
func (s *Store) SaveRun(ctx context.Context, run Run, snapshot json.RawMessage) error {
	run.Workbook = pqtype.NullRawMessage{RawMessage: snapshot, Valid: snapshot != nil}

	return s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
INSERT INTO pipeline_runs (id, started_at, finished_at, source_count, instance_count, workbook)
VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := tx.ExecContext(ctx, q,
			run.ID, run.StartedAt, run.FinishedAt,
			run.SourceCount, run.InstanceCount, run.Workbook)
		if err != nil {
			return fmt.Errorf("SaveRun: insert: %w", err)
		}
		return nil
	})
}

// LatestRun returns the most recently finished run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	const q = `
SELECT id, started_at, finished_at, source_count, instance_count, workbook
FROM pipeline_runs
ORDER BY finished_at DESC
LIMIT 1`

	var run Run
	err := s.pool.QueryRowContext(ctx, q).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.SourceCount, &run.InstanceCount, &run.Workbook)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("LatestRun: %w", err)
	}
	return run, nil
}
