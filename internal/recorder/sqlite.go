package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists batch history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so inspection tools can read while a batch writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS align_runs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			files     INTEGER,
			succeeded INTEGER,
			failed    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON align_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS series_results (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL,
			series       TEXT,
			source_file  TEXT,
			rows_read    INTEGER,
			rows_aligned INTEGER,
			rows_filled  INTEGER,
			first_date   TEXT,
			last_date    TEXT,
			status       TEXT,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_series_run ON series_results(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord, series []SeriesRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO align_runs (timestamp, files, succeeded, failed) VALUES (?,?,?,?)`,
		time.Now().Unix(), run.Files, run.Succeeded, run.Failed)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, s := range series {
		_, err := tx.Exec(`INSERT INTO series_results
			(run_id, series, source_file, rows_read, rows_aligned, rows_filled, first_date, last_date, status, error)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			runID, s.Series, s.SourceFile, s.RowsRead, s.RowsAligned, s.RowsFilled,
			s.FirstDate, s.LastDate, s.Status, s.Error)
		if err != nil {
			return fmt.Errorf("insert series %s: %w", s.Series, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
