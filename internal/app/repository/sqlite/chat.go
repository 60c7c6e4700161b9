package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
)

func (s *Store) CreateChat(ctx context.Context, chat *model.Chat) error {
	history, err := json.Marshal(chat.History)
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}

	insertSQL := `INSERT INTO chats (id, owner_id, title, history, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, insertSQL, chat.ID, chat.OwnerID, chat.Title, string(history), chat.CreatedAt, chat.UpdatedAt)
	if err != nil {
		if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.Code == sqlite3.ErrConstraint {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert chat: %w", err)
	}
	return nil
}

func (s *Store) GetChat(ctx context.Context, id, ownerID string) (*model.Chat, error) {
	query := `SELECT id, owner_id, title, history, created_at, updated_at FROM chats WHERE id = ? AND owner_id = ?`
	return scanChat(s.db.QueryRowContext(ctx, query, id, ownerID))
}

func (s *Store) ListChatsByOwner(ctx context.Context, ownerID string) ([]model.Chat, error) {
	query := `SELECT id, owner_id, title, history, created_at, updated_at
		FROM chats
		WHERE owner_id = ?
		ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	chats := make([]model.Chat, 0)
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return chats, nil
}

// AppendChatMessages appends to the history inside one transaction so
// concurrent appends cannot drop each other's messages.
func (s *Store) AppendChatMessages(ctx context.Context, id, ownerID string, msgs []model.ChatMessage, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var historyJSON string
	err = tx.QueryRowContext(ctx, `SELECT history FROM chats WHERE id = ? AND owner_id = ?`, id, ownerID).Scan(&historyJSON)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read chat history: %w", err)
	}

	var history []model.ChatMessage
	if err := json.Unmarshal([]byte(historyJSON), &history); err != nil {
		return fmt.Errorf("failed to unmarshal chat history: %w", err)
	}
	history = append(history, msgs...)

	updated, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE chats SET history = ?, updated_at = ? WHERE id = ? AND owner_id = ?`,
		string(updated), at, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}

	return tx.Commit()
}

func (s *Store) DeleteChat(ctx context.Context, id, ownerID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete chat: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) DeleteAllChats(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chats`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete chats: %w", err)
	}
	return res.RowsAffected()
}

func scanChat(row rowScanner) (*model.Chat, error) {
	var (
		chat        model.Chat
		historyJSON string
	)

	err := row.Scan(&chat.ID, &chat.OwnerID, &chat.Title, &historyJSON, &chat.CreatedAt, &chat.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db scan failed: %w", err)
	}

	if err := json.Unmarshal([]byte(historyJSON), &chat.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat history: %w", err)
	}
	return &chat, nil
}
