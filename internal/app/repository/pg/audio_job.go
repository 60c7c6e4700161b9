package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
)

const uniqueViolation = "23505"

func (s *Store) Create(ctx context.Context, job *model.AudioJob) error {
	insertSQL := `INSERT INTO audio_jobs (job_id, owner_id, stored_name, original_name, status, transcription_result, created_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var result interface{}
	if len(job.TranscriptionResult) > 0 {
		result = string(job.TranscriptionResult)
	}

	_, err := s.db.ExecContext(ctx, insertSQL,
		job.JobID, job.OwnerID, job.StoredName, job.OriginalName, string(job.Status), result, job.CreatedAt, job.LastUpdated)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert audio job: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, jobID string) (*model.AudioJob, error) {
	query := `SELECT job_id, owner_id, stored_name, original_name, status, transcription_result, created_at, last_updated
		FROM audio_jobs WHERE job_id = $1`

	return scanAudioJob(s.db.QueryRowContext(ctx, query, jobID))
}

func (s *Store) Update(ctx context.Context, jobID string, upd repository.AudioJobUpdate) error {
	setClause := "last_updated = $1"
	args := []interface{}{upd.LastUpdated}

	if upd.Status != nil {
		args = append(args, string(*upd.Status))
		setClause += fmt.Sprintf(", status = $%d", len(args))
	}
	if len(upd.TranscriptionResult) > 0 {
		args = append(args, string(upd.TranscriptionResult))
		setClause += fmt.Sprintf(", transcription_result = $%d", len(args))
	}
	args = append(args, jobID)

	query := fmt.Sprintf("UPDATE audio_jobs SET %s WHERE job_id = $%d", setClause, len(args))
	res, err := s.db.ExecContext(ctx, query, args...)
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

func (s *Store) Delete(ctx context.Context, jobID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audio_jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return false, fmt.Errorf("failed to delete audio job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]model.AudioJob, error) {
	query := `SELECT job_id, owner_id, stored_name, original_name, status, transcription_result, created_at, last_updated
		FROM audio_jobs
		WHERE owner_id = $1
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
