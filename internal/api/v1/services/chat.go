package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	apierrors "github.com/jfbenitezz/Tutorly-Backend/internal/api/errors"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/dto"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
)

const chatTitleLimit = 40

// ChatService manages per-user conversations and their message history.
type ChatService interface {
	Create(ctx context.Context, ownerID, text string) (*dto.CreateChatResult, error)
	Get(ctx context.Context, chatID, ownerID string) (*dto.ChatResponse, error)
	List(ctx context.Context, ownerID string) ([]dto.ChatSummary, error)
	Append(ctx context.Context, chatID, ownerID string, req *dto.AppendChatRequest) error
	Delete(ctx context.Context, chatID, ownerID string) error
}

type chatService struct {
	chats  repository.ChatDAO
	logger *slog.Logger
}

func NewChatService(chats repository.ChatDAO, logger *slog.Logger) ChatService {
	return &chatService{chats: chats, logger: logger}
}

// Create opens a conversation seeded with the user's first message. The
// chat title is the opening text clipped to its first characters.
func (s *chatService) Create(ctx context.Context, ownerID, text string) (*dto.CreateChatResult, error) {
	now := time.Now().UTC()
	chat := &model.Chat{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Title:   chatTitle(text),
		History: []model.ChatMessage{
			{Role: model.ChatRoleUser, Text: text},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.chats.CreateChat(ctx, chat); err != nil {
		return nil, apierrors.NewPersistenceError("failed to create chat", err)
	}
	s.logger.Info("chat created",
		slog.String("chat_id", chat.ID),
		slog.String("owner_id", ownerID))
	return &dto.CreateChatResult{ID: chat.ID}, nil
}

func (s *chatService) Get(ctx context.Context, chatID, ownerID string) (*dto.ChatResponse, error) {
	chat, err := s.chats.GetChat(ctx, chatID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NewNotFoundError("chat")
		}
		return nil, apierrors.NewPersistenceError("failed to load chat", err)
	}
	res := dto.FromChat(chat)
	return &res, nil
}

func (s *chatService) List(ctx context.Context, ownerID string) ([]dto.ChatSummary, error) {
	chats, err := s.chats.ListChatsByOwner(ctx, ownerID)
	if err != nil {
		return nil, apierrors.NewPersistenceError("failed to list chats", err)
	}
	return lo.Map(chats, func(chat model.Chat, _ int) dto.ChatSummary {
		return dto.ChatSummary{ID: chat.ID, Title: chat.Title, UpdatedAt: chat.UpdatedAt}
	}), nil
}

// Append records an exchange: the user's question when present, then the
// model's answer. An absent question appends the answer alone.
func (s *chatService) Append(ctx context.Context, chatID, ownerID string, req *dto.AppendChatRequest) error {
	var messages []model.ChatMessage
	if req.Question != "" {
		messages = append(messages, model.ChatMessage{
			Role: model.ChatRoleUser,
			Text: req.Question,
			Img:  req.Img,
		})
	}
	messages = append(messages, model.ChatMessage{
		Role: model.ChatRoleModel,
		Text: req.Answer,
	})

	if err := s.chats.AppendChatMessages(ctx, chatID, ownerID, messages, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierrors.NewNotFoundError("chat")
		}
		return apierrors.NewPersistenceError("failed to append chat messages", err)
	}
	return nil
}

func (s *chatService) Delete(ctx context.Context, chatID, ownerID string) error {
	deleted, err := s.chats.DeleteChat(ctx, chatID, ownerID)
	if err != nil {
		return apierrors.NewPersistenceError("failed to delete chat", err)
	}
	if !deleted {
		return apierrors.NewNotFoundError("chat")
	}
	return nil
}

func chatTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= chatTitleLimit {
		return text
	}
	return string(runes[:chatTitleLimit])
}
