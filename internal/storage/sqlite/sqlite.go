// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aanand-mishra/roster-diff/internal/storage"
	"github.com/aanand-mishra/roster-diff/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the comparison_runs
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// Schema:
	//   mode           — comparison mode name
	//   file1_name     — uploaded file name of roster A (no content)
	//   file2_name     — uploaded file name of roster B (no content)
	//   in_both ...    — the summary counts of the report
	//   created_at     — unix seconds, UTC
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS comparison_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			mode          TEXT    NOT NULL,
			file1_name    TEXT    NOT NULL,
			file2_name    TEXT    NOT NULL,
			in_both       INTEGER NOT NULL,
			only_in_file1 INTEGER NOT NULL,
			only_in_file2 INTEGER NOT NULL,
			mismatched    INTEGER NOT NULL,
			created_at    INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateRun inserts a run summary. Placeholders keep file names (user
// input) as pure data.
func (s *SQLite) CreateRun(run types.RunSummary) (int64, error) {
	stmt, err := s.Db.Prepare(`
		INSERT INTO comparison_runs
			(mode, file1_name, file2_name, in_both, only_in_file1, only_in_file2, mismatched, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRun: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(
		string(run.Mode), run.File1Name, run.File2Name,
		run.InBoth, run.OnlyInA, run.OnlyInB, run.Mismatched,
		time.Now().UTC().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRun: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateRun: last insert id: %w", err)
	}
	return lastID, nil
}

const selectRun = `SELECT id, mode, file1_name, file2_name, in_both, only_in_file1, only_in_file2, mismatched, created_at FROM comparison_runs`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (types.RunSummary, error) {
	var (
		run     types.RunSummary
		mode    string
		created int64
	)
	err := row.Scan(
		&run.ID,
		&mode,
		&run.File1Name,
		&run.File2Name,
		&run.InBoth,
		&run.OnlyInA,
		&run.OnlyInB,
		&run.Mismatched,
		&created,
	)
	if err != nil {
		return types.RunSummary{}, err
	}
	run.Mode = types.Mode(mode)
	run.CreatedAt = time.Unix(created, 0).UTC()
	return run, nil
}

// GetRunByID fetches exactly one run matched by primary key.
func (s *SQLite) GetRunByID(id int64) (types.RunSummary, error) {
	stmt, err := s.Db.Prepare(selectRun + " WHERE id = ? LIMIT 1")
	if err != nil {
		return types.RunSummary{}, fmt.Errorf("GetRunByID: prepare: %w", err)
	}
	defer stmt.Close()

	run, err := scanRun(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.RunSummary{}, fmt.Errorf("no comparison run with id %d: %w", id, storage.ErrNotFound)
		}
		return types.RunSummary{}, fmt.Errorf("GetRunByID: scan: %w", err)
	}
	return run, nil
}

// GetRuns returns all runs, newest first.
func (s *SQLite) GetRuns() ([]types.RunSummary, error) {
	stmt, err := s.Db.Prepare(selectRun + " ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("GetRuns: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetRuns: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so the JSON is [] rather than null.
	runs := make([]types.RunSummary, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("GetRuns: scan row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetRuns: rows iteration: %w", err)
	}
	return runs, nil
}
