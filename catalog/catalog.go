// Package catalog keeps a SQLite history of conversion runs so batch
// jobs over large screen libraries can be audited and resumed.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Conversion outcome values stored per file.
const (
	OutcomeConverted = "converted"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Store records conversion runs and per-file outcomes.
type Store struct {
	db *sql.DB
}

// Run is one batch conversion invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Converted  int
	Failed     int
}

// Conversion is one file-level outcome within a run.
type Conversion struct {
	ID        int64
	RunID     string
	Source    string
	Output    string
	Outcome   string
	Message   string
	CreatedAt time.Time
}

// Open opens (creating if needed) the catalog database at path and
// migrates its schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog schema: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at DATETIME,
		converted INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		source TEXT NOT NULL,
		output TEXT,
		outcome TEXT NOT NULL,
		message TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source);
	CREATE INDEX IF NOT EXISTS idx_conversions_run ON conversions(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// BeginRun opens a new batch run and returns its generated ID.
func (s *Store) BeginRun() (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// FinishRun closes a run with its final counters.
func (s *Store) FinishRun(runID string, converted, failed int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, converted = ?, failed = ? WHERE id = ?`,
		time.Now().UTC(), converted, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	return nil
}

// RecordConversion appends one file outcome to a run.
func (s *Store) RecordConversion(runID, source, output, outcome, message string) error {
	_, err := s.db.Exec(
		`INSERT INTO conversions (run_id, source, output, outcome, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, source, output, outcome, message, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record conversion of %s: %w", source, err)
	}
	return nil
}

// History returns the recorded outcomes for one source file, newest
// first.
func (s *Store) History(source string) ([]Conversion, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, source, output, outcome, message, created_at
		 FROM conversions WHERE source = ? ORDER BY created_at DESC, id DESC`,
		source,
	)
	if err != nil {
		return nil, fmt.Errorf("query history of %s: %w", source, err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		var output, message sql.NullString
		if err := rows.Scan(&c.ID, &c.RunID, &c.Source, &output, &c.Outcome, &message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversion row: %w", err)
		}
		c.Output = output.String
		c.Message = message.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return out, nil
}

// LastRun returns the most recently started run, or nil when the
// catalog is empty.
func (s *Store) LastRun() (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, started_at, finished_at, converted, failed
		 FROM runs ORDER BY started_at DESC LIMIT 1`,
	)
	var r Run
	var finished sql.NullTime
	err := row.Scan(&r.ID, &r.StartedAt, &finished, &r.Converted, &r.Failed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last run: %w", err)
	}
	r.FinishedAt = finished.Time
	return &r, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
