package model

import (
	"time"
)

// Chat message roles. The model role covers any machine-generated answer.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage is one entry in a chat's append-only history.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
	Img  string `json:"img,omitempty"`
}

// Chat is a persisted conversation. History only ever grows; the title is
// derived from the opening message at creation time.
type Chat struct {
	ID        string        `json:"id" db:"id"`
	OwnerID   string        `json:"ownerId" db:"owner_id"`
	Title     string        `json:"title" db:"title"`
	History   []ChatMessage `json:"history" db:"history"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for Chat
func (Chat) TableName() string {
	return "chats"
}
