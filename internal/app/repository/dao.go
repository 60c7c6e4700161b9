package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
)

// ErrNotFound is returned when the referenced record does not exist locally.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a create collides with an existing primary key.
var ErrDuplicate = errors.New("record already exists")

// AudioJobUpdate names the fields a state transition may touch. Nil fields
// are left alone. An update never creates a record.
type AudioJobUpdate struct {
	Status              *model.JobStatus
	TranscriptionResult json.RawMessage
	LastUpdated         time.Time
}

// AudioJobDAO is the durable store of audio job records, mutated only by the
// orchestrator in response to remote-call outcomes.
type AudioJobDAO interface {
	Create(ctx context.Context, job *model.AudioJob) error
	Get(ctx context.Context, jobID string) (*model.AudioJob, error)
	Update(ctx context.Context, jobID string, upd AudioJobUpdate) error
	Delete(ctx context.Context, jobID string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.AudioJob, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// ChatDAO is the append-only chat history store. Method names carry a Chat
// suffix so one Store can host both DAOs.
type ChatDAO interface {
	CreateChat(ctx context.Context, chat *model.Chat) error
	GetChat(ctx context.Context, id, ownerID string) (*model.Chat, error)
	ListChatsByOwner(ctx context.Context, ownerID string) ([]model.Chat, error)
	AppendChatMessages(ctx context.Context, id, ownerID string, msgs []model.ChatMessage, at time.Time) error
	DeleteChat(ctx context.Context, id, ownerID string) (bool, error)
	DeleteAllChats(ctx context.Context) (int64, error)
}

// Store bundles both DAOs over one database handle.
type Store interface {
	AudioJobDAO
	ChatDAO
	Close() error
}
