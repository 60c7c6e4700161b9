package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS audio_jobs (
	job_id               TEXT PRIMARY KEY,
	owner_id             TEXT NOT NULL,
	stored_name          TEXT NOT NULL DEFAULT '',
	original_name        TEXT NOT NULL DEFAULT '',
	status               TEXT NOT NULL DEFAULT 'uploaded',
	transcription_result JSONB,
	created_at           TIMESTAMPTZ NOT NULL,
	last_updated         TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audio_jobs_owner ON audio_jobs(owner_id, created_at);

CREATE TABLE IF NOT EXISTS chats (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	history    JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chats_owner ON chats(owner_id, updated_at);
`

// Store implements repository.Store on PostgreSQL.
type Store struct {
	db *sql.DB
}

// NewStore connects to PostgreSQL and ensures the schema exists.
func NewStore(connectionString string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
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
