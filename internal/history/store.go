// Package history persists one row per pipeline run in a SQLite database so
// operators can inspect recent generation activity.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded pipeline run.
type Run struct {
	ID            string
	StartedAt     time.Time
	Duration      time.Duration
	Repos         int
	CloneFailures int
	ScanFailures  int
	Status        string
}

// Store is a SQLite-backed run-history store.
type Store struct {
	db *sql.DB
}

// Open creates or opens the run-history database. Use ":memory:" for an
// in-memory database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		repos INTEGER NOT NULL,
		clone_failures INTEGER NOT NULL,
		scan_failures INTEGER NOT NULL,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one completed run.
func (s *Store) Append(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, duration_ms, repos, clone_failures, scan_failures, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(),
		run.Repos, run.CloneFailures, run.ScanFailures, run.Status)
	if err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, repos, clone_failures, scan_failures, status
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedMilli, durationMilli int64
		if err := rows.Scan(&run.ID, &startedMilli, &durationMilli,
			&run.Repos, &run.CloneFailures, &run.ScanFailures, &run.Status); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedMilli).UTC()
		run.Duration = time.Duration(durationMilli) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
