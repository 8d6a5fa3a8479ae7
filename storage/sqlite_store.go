package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// FillRun is one recorded invocation of the fill workflow.
type FillRun struct {
	ID        string
	StartedAt time.Time
	Template  string
	Source    string
	OutputDir string
	Filled    int
	Invalid   int
	Note      string
}

type SQLiteStore struct {
	db *sql.DB
}

var ErrRunNotFound = errors.New("fill run not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS fill_runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	template TEXT NOT NULL,
	source TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	filled INTEGER NOT NULL CHECK(filled >= 0),
	invalid INTEGER NOT NULL CHECK(invalid >= 0),
	note TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertRun records one run and returns its ID. A run without an ID gets a
// fresh UUID; a zero start time means now.
func (s *SQLiteStore) InsertRun(run FillRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	const insertStmt = `
INSERT INTO fill_runs (
	id,
	started_at,
	template,
	source,
	output_dir,
	filled,
	invalid,
	note
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := s.db.Exec(
		insertStmt,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.Template,
		run.Source,
		run.OutputDir,
		run.Filled,
		run.Invalid,
		run.Note,
	)
	if err != nil {
		return "", fmt.Errorf("insert fill run: %w", err)
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs first. A non-positive limit means
// the default of 50.
func (s *SQLiteStore) ListRuns(limit int) ([]FillRun, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
SELECT
	id,
	started_at,
	template,
	source,
	output_dir,
	filled,
	invalid,
	note
FROM fill_runs
ORDER BY started_at DESC, id
LIMIT ?;
`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query fill runs: %w", err)
	}
	defer rows.Close()

	var runs []FillRun
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fill runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run with the given ID, or ErrRunNotFound when absent.
func (s *SQLiteStore) GetRun(id string) (FillRun, error) {
	const query = `
SELECT
	id,
	started_at,
	template,
	source,
	output_dir,
	filled,
	invalid,
	note
FROM fill_runs
WHERE id = ?;
`

	run, err := scanRun(s.db.QueryRow(query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return FillRun{}, ErrRunNotFound
	}
	if err != nil {
		return FillRun{}, err
	}
	return run, nil
}

func scanRun(scan func(dest ...any) error) (FillRun, error) {
	var (
		run        FillRun
		startedRaw string
	)
	if err := scan(
		&run.ID,
		&startedRaw,
		&run.Template,
		&run.Source,
		&run.OutputDir,
		&run.Filled,
		&run.Invalid,
		&run.Note,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FillRun{}, err
		}
		return FillRun{}, fmt.Errorf("scan fill run: %w", err)
	}

	started, err := time.Parse(time.RFC3339, startedRaw)
	if err != nil {
		return FillRun{}, fmt.Errorf("parse run start time %q: %w", startedRaw, err)
	}
	run.StartedAt = started
	return run, nil
}
