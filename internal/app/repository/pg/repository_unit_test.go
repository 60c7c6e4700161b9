package pg

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
)

// TestStore_Interface verifies Store implements the repository interfaces
func TestStore_Interface(t *testing.T) {
	var _ repository.Store = (*Store)(nil)
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Store{db: db}, mock
}

func TestCreate_Unit(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO audio_jobs`)).
		WithArgs("J1", "user-1", "stored.mp3", "a.mp3", "uploaded", nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Create(context.Background(), &model.AudioJob{
		JobID:        "J1",
		OwnerID:      "user-1",
		StoredName:   "stored.mp3",
		OriginalName: "a.mp3",
		Status:       model.JobStatusUploaded,
		CreatedAt:    now,
		LastUpdated:  now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateKey_Unit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO audio_jobs`)).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := store.Create(context.Background(), &model.AudioJob{JobID: "J1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestGet_Unit(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"job_id", "owner_id", "stored_name", "original_name", "status", "transcription_result", "created_at", "last_updated"}).
		AddRow("J1", "user-1", "stored.mp3", "a.mp3", "transcribed", `{"text":"hello"}`, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT job_id, owner_id, stored_name, original_name, status, transcription_result, created_at, last_updated
		FROM audio_jobs WHERE job_id = $1`)).
		WithArgs("J1").
		WillReturnRows(rows)

	job, err := store.Get(context.Background(), "J1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusTranscribed, job.Status)
	assert.JSONEq(t, `{"text":"hello"}`, string(job.TranscriptionResult))
}

func TestGet_NotFound_Unit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM audio_jobs WHERE job_id`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"job_id"}))

	_, err := store.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate_Unit(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()
	status := model.JobStatusTranscribed

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE audio_jobs SET last_updated = $1, status = $2, transcription_result = $3 WHERE job_id = $4`)).
		WithArgs(now, "transcribed", `{"text":"hi"}`, "J1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Update(context.Background(), "J1", repository.AudioJobUpdate{
		Status:              &status,
		TranscriptionResult: json.RawMessage(`{"text":"hi"}`),
		LastUpdated:         now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound_Unit(t *testing.T) {
	store, mock := newMockStore(t)
	status := model.JobStatusTranscribed

	mock.ExpectExec(`UPDATE audio_jobs SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), "ghost", repository.AudioJobUpdate{Status: &status, LastUpdated: time.Now()})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete_Unit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM audio_jobs WHERE job_id = $1`)).
		WithArgs("J1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := store.Delete(context.Background(), "J1")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteAll_Unit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM audio_jobs`)).
		WillReturnResult(sqlmock.NewResult(0, 7))

	count, err := store.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestAppendChatMessages_Unit(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT history FROM chats WHERE id = $1 AND owner_id = $2 FOR UPDATE`)).
		WithArgs("c1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"history"}).AddRow(`[{"role":"user","text":"hi"}]`))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE chats SET history = $1, updated_at = $2 WHERE id = $3 AND owner_id = $4`)).
		WithArgs(`[{"role":"user","text":"hi"},{"role":"model","text":"hello"}]`, now, "c1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.AppendChatMessages(context.Background(), "c1", "user-1",
		[]model.ChatMessage{{Role: "model", Text: "hello"}}, now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListChatsByOwner_Unit(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "history", "created_at", "updated_at"}).
		AddRow("c1", "user-1", "hello", `[]`, now, now)

	mock.ExpectQuery(`SELECT id, owner_id, title, history, created_at, updated_at`).
		WithArgs("user-1").
		WillReturnRows(rows)

	chats, err := store.ListChatsByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "hello", chats[0].Title)
}
