package dto

import (
	"strings"
	"time"

	"github.com/jfbenitezz/Tutorly-Backend/internal/api/errors"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
)

// CreateChatRequest opens a new conversation with the user's first message.
type CreateChatRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r *CreateChatRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.NewValidationError("text must not be blank", nil)
	}
	return nil
}

// AppendChatRequest adds a question/answer exchange to an existing chat.
// The question is optional so a regenerated answer can be appended alone.
type AppendChatRequest struct {
	Question string `json:"question"`
	Img      string `json:"img"`
	Answer   string `json:"answer" binding:"required"`
}

// ChatSummary is the listing projection: enough to render a sidebar entry.
type ChatSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatMessageResponse mirrors a single history entry.
type ChatMessageResponse struct {
	Role string `json:"role"`
	Text string `json:"text"`
	Img  string `json:"img,omitempty"`
}

// ChatResponse is the full conversation.
type ChatResponse struct {
	ID        string                `json:"id"`
	OwnerID   string                `json:"ownerId"`
	Title     string                `json:"title"`
	History   []ChatMessageResponse `json:"history"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// CreateChatResult returns the identifier of the freshly created chat.
type CreateChatResult struct {
	ID string `json:"id"`
}

// FromChat converts the persistence model to its API projection.
func FromChat(chat *model.Chat) ChatResponse {
	history := make([]ChatMessageResponse, 0, len(chat.History))
	for _, m := range chat.History {
		history = append(history, ChatMessageResponse{Role: m.Role, Text: m.Text, Img: m.Img})
	}
	return ChatResponse{
		ID:        chat.ID,
		OwnerID:   chat.OwnerID,
		Title:     chat.Title,
		History:   history,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}
