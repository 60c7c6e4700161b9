package services

import (
	"context"
	"log/slog"

	apierrors "github.com/jfbenitezz/Tutorly-Backend/internal/api/errors"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/dto"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
)

// AdminService exposes maintenance operations.
type AdminService interface {
	Reset(ctx context.Context) (*dto.ResetResponse, error)
}

type adminService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewAdminService(store repository.Store, logger *slog.Logger) AdminService {
	return &adminService{store: store, logger: logger}
}

// Reset wipes every audio job and chat record and reports the counts.
// Staged blobs are not touched; they were already released per upload.
func (s *adminService) Reset(ctx context.Context) (*dto.ResetResponse, error) {
	jobs, err := s.store.DeleteAll(ctx)
	if err != nil {
		return nil, apierrors.NewPersistenceError("failed to reset audio jobs", err)
	}
	chats, err := s.store.DeleteAllChats(ctx)
	if err != nil {
		return nil, apierrors.NewPersistenceError("failed to reset chats", err)
	}
	s.logger.Warn("database reset",
		slog.Int64("jobs_deleted", jobs),
		slog.Int64("chats_deleted", chats))
	return &dto.ResetResponse{JobsDeleted: jobs, ChatsDeleted: chats}, nil
}
