package results

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// SQLite stores runs in two tables: runs holds the fixed columns and
// run_metrics one row per data, values or state entry.
type SQLite struct {
	db      *sql.DB
	sweepID string
}

// OpenSQLite opens (creating if needed) the database at path. Rows written
// through the sink are tagged with sweepID.
func OpenSQLite(path, sweepID string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, sweepID: sweepID}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			sweep_id TEXT NOT NULL,
			run INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			seconds REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_sweep ON runs(sweep_id, run);`,
		`CREATE TABLE IF NOT EXISTS run_metrics (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (run_id, kind, key)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Write stores r in a single transaction.
func (s *SQLite) Write(r Row) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, sweep_id, run, width, height, steps, seconds) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, s.sweepID, r.Run, r.Size.W, r.Size.H, r.Steps, r.Seconds,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", r.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_metrics (run_id, kind, key, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	insert := func(kind, key, value string) error {
		_, err := stmt.ExecContext(ctx, r.RunID, kind, key, value)
		return err
	}
	for k, v := range r.Data {
		if err := insert("data", k, v); err != nil {
			return err
		}
	}
	for k, v := range r.Values {
		if err := insert("values", k, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
			return err
		}
	}
	for k, v := range r.States {
		if err := insert("state", k, strconv.Itoa(v)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Metric reads back one stored metric.
func (s *SQLite) Metric(runID, kind, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM run_metrics WHERE run_id = ? AND kind = ? AND key = ?`, runID, kind, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// CountRuns returns the number of runs stored for the sink's sweep.
func (s *SQLite) CountRuns() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE sweep_id = ?`, s.sweepID).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Multi fans rows out to several sinks.
type Multi []Sink

// Write writes r to every sink, stopping at the first error.
func (m Multi) Write(r Row) error {
	for _, s := range m {
		if err := s.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
