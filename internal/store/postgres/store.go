// Package postgres is the run ledger: a Postgres-backed audit store
// recording one row per parse+analyze invocation, adapted from the
// teacher's internal/repository/postgres — same *sql.DB-wrapping
// connection pattern (postgres.go), same ExecContext/QueryRowContext
// style as audit_log.go — repointed at a schedule-import run record
// instead of a generic audit log.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Store wraps a SQL database connection for run-ledger operations.
type Store struct {
	db *sql.DB
}

// New opens a connection to dsn and verifies it with a ping.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Health checks database connectivity.
func (s *Store) Health(ctx context.Context) error { return s.db.PingContext(ctx) }

// Run is one parse+analyze invocation's audit record.
type Run struct {
	ID                string
	SourceFilename    string
	DetectedFormat    string
	RowCount          int
	TaskCount         int
	RelationshipCount int
	DCMAOverallScore  float64
	DurationMS        int64
	ErrorKind         string // empty if the run succeeded
	CreatedAt         time.Time
}

// schema is the run ledger's single table. EnsureSchema executes it
// (CREATE TABLE IF NOT EXISTS); the queries below rely on its columns.
const schema = `
CREATE TABLE IF NOT EXISTS parse_runs (
	id                 TEXT PRIMARY KEY,
	source_filename    TEXT NOT NULL,
	detected_format    TEXT NOT NULL,
	row_count          INTEGER NOT NULL,
	task_count         INTEGER NOT NULL,
	relationship_count INTEGER NOT NULL,
	dcma_overall_score DOUBLE PRECISION NOT NULL,
	duration_ms        BIGINT NOT NULL,
	error_kind         TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the parse_runs table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to ensure run ledger schema: %w", err)
	}
	return nil
}

// RecordRun inserts one run record. Inserting the same id twice is an
// idempotent no-op (ON CONFLICT DO NOTHING), so a retried host call
// cannot double-count a run.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	query := `
		INSERT INTO parse_runs (
			id, source_filename, detected_format, row_count, task_count,
			relationship_count, dcma_overall_score, duration_ms, error_kind, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.SourceFilename, run.DetectedFormat, run.RowCount, run.TaskCount,
		run.RelationshipCount, run.DCMAOverallScore, run.DurationMS, run.ErrorKind, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// GetByID retrieves a run record by id.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	query := `
		SELECT id, source_filename, detected_format, row_count, task_count,
			relationship_count, dcma_overall_score, duration_ms, error_kind, created_at
		FROM parse_runs
		WHERE id = $1
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.SourceFilename, &run.DetectedFormat, &run.RowCount, &run.TaskCount,
		&run.RelationshipCount, &run.DCMAOverallScore, &run.DurationMS, &run.ErrorKind, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRecent returns the most recent runs for a source filename,
// newest first, for trend tracking across repeated imports.
func (s *Store) ListRecent(ctx context.Context, sourceFilename string, limit int) ([]*Run, error) {
	query := `
		SELECT id, source_filename, detected_format, row_count, task_count,
			relationship_count, dcma_overall_score, duration_ms, error_kind, created_at
		FROM parse_runs
		WHERE source_filename = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, sourceFilename, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(
			&run.ID, &run.SourceFilename, &run.DetectedFormat, &run.RowCount, &run.TaskCount,
			&run.RelationshipCount, &run.DCMAOverallScore, &run.DurationMS, &run.ErrorKind, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
