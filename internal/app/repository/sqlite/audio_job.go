package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
)

// Create inserts a new job record. The job id comes from the remote service
// and must be unused.
func (s *Store) Create(ctx context.Context, job *model.AudioJob) error {
	insertSQL := `INSERT INTO audio_jobs (job_id, owner_id, stored_name, original_name, status, transcription_result, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var result interface{}
	if len(job.TranscriptionResult) > 0 {
		result = string(job.TranscriptionResult)
	}

	_, err := s.db.ExecContext(ctx, insertSQL,
		job.JobID, job.OwnerID, job.StoredName, job.OriginalName, string(job.Status), result, job.CreatedAt, job.LastUpdated)
	if err != nil {
		if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.Code == sqlite3.ErrConstraint {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert audio job: %w", err)
	}
	return nil
}

// Get fetches one job record by its remote-issued id.
func (s *Store) Get(ctx context.Context, jobID string) (*model.AudioJob, error) {
	query := `SELECT job_id, owner_id, stored_name, original_name, status, transcription_result, created_at, last_updated
		FROM audio_jobs WHERE job_id = ?`

	return scanAudioJob(s.db.QueryRowContext(ctx, query, jobID))
}

// Update applies a partial mutation; a missing record is signalled, never
// silently created.
func (s *Store) Update(ctx context.Context, jobID string, upd repository.AudioJobUpdate) error {
	setClause := "last_updated = ?"
	args := []interface{}{upd.LastUpdated}

	if upd.Status != nil {
		setClause += ", status = ?"
		args = append(args, string(*upd.Status))
	}
	if len(upd.TranscriptionResult) > 0 {
		setClause += ", transcription_result = ?"
		args = append(args, string(upd.TranscriptionResult))
	}
	args = append(args, jobID)

	res, err := s.db.ExecContext(ctx, "UPDATE audio_jobs SET "+setClause+" WHERE job_id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update audio job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a job record, reporting whether one existed.
func (s *Store) Delete(ctx context.Context, jobID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audio_jobs WHERE job_id = ?`, jobID)
	if err != nil {
		return false, fmt.Errorf("failed to delete audio job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListByOwner returns the owner's jobs, most recent first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]model.AudioJob, error) {
	query := `SELECT job_id, owner_id, stored_name, original_name, status, transcription_result, created_at, last_updated
		FROM audio_jobs
		WHERE owner_id = ?
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.AudioJob, 0)
	for rows.Next() {
		job, err := scanAudioJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return jobs, nil
}

// DeleteAll wipes every job record and returns the count removed.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audio_jobs`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audio jobs: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAudioJob(row rowScanner) (*model.AudioJob, error) {
	var (
		job    model.AudioJob
		status string
		result sql.NullString
	)

	err := row.Scan(&job.JobID, &job.OwnerID, &job.StoredName, &job.OriginalName, &status, &result, &job.CreatedAt, &job.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db scan failed: %w", err)
	}

	job.Status = model.JobStatus(status)
	if result.Valid && result.String != "" {
		job.TranscriptionResult = json.RawMessage(result.String)
	}
	return &job, nil
}
