package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/samber/lo"

	apierrors "github.com/jfbenitezz/Tutorly-Backend/internal/api/errors"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/dto"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/gateway/transcription"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/staging"
)

// AudioJobService drives an audio job through its lifecycle: upload to the
// remote transcription service, proxy its status and processing calls, and
// persist the transcription result once it lands.
type AudioJobService interface {
	Create(ctx context.Context, ownerID string, file io.Reader, originalName string) (*dto.CreateJobResult, error)
	Status(ctx context.Context, jobID string) (json.RawMessage, error)
	Process(ctx context.Context, jobID string, options json.RawMessage) (json.RawMessage, error)
	Transcribe(ctx context.Context, jobID string, useFallback *bool) (json.RawMessage, error)
	Cleanup(ctx context.Context, jobID string) (json.RawMessage, error)
	Transcript(ctx context.Context, jobID string) (*dto.TranscriptResponse, error)
	ListByOwner(ctx context.Context, ownerID string) ([]dto.AudioJobResponse, error)
}

type audioJobService struct {
	blobs   staging.Area
	gateway transcription.Gateway
	jobs    repository.AudioJobDAO
	logger  *slog.Logger
}

func NewAudioJobService(blobs staging.Area, gw transcription.Gateway, jobs repository.AudioJobDAO, logger *slog.Logger) AudioJobService {
	return &audioJobService{
		blobs:   blobs,
		gateway: gw,
		jobs:    jobs,
		logger:  logger,
	}
}

// Create stages the incoming file, forwards it to the transcription service
// and records the job locally. The staged copy is released on every path;
// a failed release only loses scratch space, so it is logged and swallowed.
func (s *audioJobService) Create(ctx context.Context, ownerID string, file io.Reader, originalName string) (*dto.CreateJobResult, error) {
	handle, err := s.blobs.Stage(ctx, file, originalName)
	if err != nil {
		return nil, apierrors.NewInternalError("failed to stage uploaded file", err)
	}
	defer func() {
		if rerr := s.blobs.Release(ctx, handle); rerr != nil {
			s.logger.Warn("failed to release staged file",
				slog.String("key", handle.Key),
				slog.String("error", rerr.Error()))
		}
	}()

	result, err := s.gateway.Upload(ctx, handle)
	if err != nil {
		return nil, mapGatewayError(err)
	}

	now := time.Now().UTC()
	job := &model.AudioJob{
		JobID:        result.AudioID,
		OwnerID:      ownerID,
		StoredName:   handle.StoredName,
		OriginalName: originalName,
		Status:       model.JobStatusUploaded,
		CreatedAt:    now,
		LastUpdated:  now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apierrors.NewConflictError("audio job already exists")
		}
		return nil, apierrors.NewPersistenceError("failed to save audio job", err)
	}

	s.logger.Info("audio job created",
		slog.String("job_id", job.JobID),
		slog.String("owner_id", ownerID))

	res := &dto.CreateJobResult{Job: dto.FromAudioJob(job), Remote: result.Raw}
	return res, nil
}

// Status asks the remote service where the job stands. It is a pure proxy
// and never touches the local record.
func (s *audioJobService) Status(ctx context.Context, jobID string) (json.RawMessage, error) {
	raw, err := s.gateway.Status(ctx, jobID)
	if err != nil {
		return nil, mapGatewayError(err)
	}
	return raw, nil
}

// Process forwards processing options to the remote service verbatim.
func (s *audioJobService) Process(ctx context.Context, jobID string, options json.RawMessage) (json.RawMessage, error) {
	raw, err := s.gateway.Process(ctx, jobID, options)
	if err != nil {
		return nil, mapGatewayError(err)
	}
	return raw, nil
}

// Transcribe triggers remote transcription and, only when the remote call
// succeeds, persists the payload as the job's transcription result. A job
// unknown locally still reaches the remote side first; the store is never
// upserted from here.
func (s *audioJobService) Transcribe(ctx context.Context, jobID string, useFallback *bool) (json.RawMessage, error) {
	raw, err := s.gateway.Transcribe(ctx, jobID, useFallback)
	if err != nil {
		return nil, mapGatewayError(err)
	}

	status := model.JobStatusTranscribed
	update := repository.AudioJobUpdate{
		Status:              &status,
		TranscriptionResult: raw,
		LastUpdated:         time.Now().UTC(),
	}
	if err := s.jobs.Update(ctx, jobID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NewNotFoundError("audio job")
		}
		return nil, apierrors.NewPersistenceError("failed to save transcription result", err)
	}
	return raw, nil
}

// Cleanup tells the remote service to drop the job, then removes the local
// record. The local delete only happens after the remote side confirmed.
func (s *audioJobService) Cleanup(ctx context.Context, jobID string) (json.RawMessage, error) {
	raw, err := s.gateway.Cleanup(ctx, jobID)
	if err != nil {
		return nil, mapGatewayError(err)
	}

	deleted, err := s.jobs.Delete(ctx, jobID)
	if err != nil {
		return nil, apierrors.NewPersistenceError("failed to delete audio job", err)
	}
	if !deleted {
		return nil, apierrors.NewNotFoundError("audio job")
	}
	s.logger.Info("audio job cleaned up", slog.String("job_id", jobID))
	return raw, nil
}

// Transcript serves the locally stored result. Ready is false while the job
// exists but has not been transcribed yet; a missing job is a not-found.
func (s *audioJobService) Transcript(ctx context.Context, jobID string) (*dto.TranscriptResponse, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NewNotFoundError("audio job")
		}
		return nil, apierrors.NewPersistenceError("failed to load audio job", err)
	}
	return &dto.TranscriptResponse{
		JobID:  job.JobID,
		Status: string(job.Status),
		Ready:  job.HasResult(),
		Result: job.TranscriptionResult,
	}, nil
}

func (s *audioJobService) ListByOwner(ctx context.Context, ownerID string) ([]dto.AudioJobResponse, error) {
	jobs, err := s.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apierrors.NewPersistenceError("failed to list audio jobs", err)
	}
	return lo.Map(jobs, func(job model.AudioJob, _ int) dto.AudioJobResponse {
		return dto.FromAudioJob(&job)
	}), nil
}

// mapGatewayError turns a transcription gateway failure into the API error
// that preserves the remote response for the client.
func mapGatewayError(err error) *apierrors.APIError {
	var gwErr *transcription.GatewayError
	if errors.As(err, &gwErr) {
		return apierrors.NewGatewayError("transcription service error", gwErr.StatusCode, gwErr.Body)
	}
	return apierrors.NewInternalError("transcription gateway failure", err)
}
