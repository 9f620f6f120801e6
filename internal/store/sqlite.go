package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore tracks processed job IDs in a SQLite database. Alternate
// backend to JSONStore, selected with STORE_BACKEND=sqlite; useful once the
// processed set grows past what a rewritten-on-every-add JSON file handles
// comfortably.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the processed_jobs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS processed_jobs (
		job_id       TEXT PRIMARY KEY,
		seq          INTEGER,
		processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating processed_jobs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns all processed job IDs in insertion order.
func (s *SQLiteStore) Load() ([]string, error) {
	rows, err := s.db.Query("SELECT job_id FROM processed_jobs ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("loading processed jobs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning processed job: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Has returns true if the given job ID has already been recorded.
func (s *SQLiteStore) Has(id string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM processed_jobs WHERE job_id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking processed status for %s: %w", id, err)
	}
	return true, nil
}

// Add records a job ID as processed. If it already exists the call is a no-op.
func (s *SQLiteStore) Add(id string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO processed_jobs (job_id, seq) VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM processed_jobs))",
		id,
	)
	if err != nil {
		return fmt.Errorf("marking job %s as processed: %w", id, err)
	}
	return nil
}

// Clear deletes all processed entries.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM processed_jobs"); err != nil {
		return fmt.Errorf("clearing processed jobs: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
