package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS audio_jobs (
	job_id               TEXT PRIMARY KEY,
	owner_id             TEXT NOT NULL,
	stored_name          TEXT NOT NULL DEFAULT '',
	original_name        TEXT NOT NULL DEFAULT '',
	status               TEXT NOT NULL DEFAULT 'uploaded',
	transcription_result TEXT,
	created_at           TIMESTAMP NOT NULL,
	last_updated         TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audio_jobs_owner ON audio_jobs(owner_id, created_at);

CREATE TABLE IF NOT EXISTS chats (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	history    TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chats_owner ON chats(owner_id, updated_at);
`

// Store implements repository.Store on SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the SQLite database at dbFilePath and
// ensures the schema exists.
func NewStore(dbFilePath string) (*Store, error) {
	if dir := filepath.Dir(dbFilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
