package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testJob(jobID, ownerID string) *model.AudioJob {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.AudioJob{
		JobID:        jobID,
		OwnerID:      ownerID,
		StoredName:   "1700000000000-a.mp3",
		OriginalName: "a.mp3",
		Status:       model.JobStatusUploaded,
		CreatedAt:    now,
		LastUpdated:  now,
	}
}

func TestAudioJobCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testJob("J1", "user-1")))

	got, err := store.Get(ctx, "J1")
	require.NoError(t, err)
	assert.Equal(t, "J1", got.JobID)
	assert.Equal(t, "user-1", got.OwnerID)
	assert.Equal(t, model.JobStatusUploaded, got.Status)
	assert.False(t, got.HasResult())
}

func TestAudioJobCreateDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testJob("J1", "user-1")))
	err := store.Create(ctx, testJob("J1", "user-2"))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestAudioJobGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAudioJobUpdateTranscribed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testJob("J1", "user-1")))

	status := model.JobStatusTranscribed
	at := time.Now().UTC().Truncate(time.Second).Add(time.Minute)
	err := store.Update(ctx, "J1", repository.AudioJobUpdate{
		Status:              &status,
		TranscriptionResult: json.RawMessage(`{"text":"hello"}`),
		LastUpdated:         at,
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "J1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusTranscribed, got.Status)
	assert.JSONEq(t, `{"text":"hello"}`, string(got.TranscriptionResult))
	assert.Equal(t, at, got.LastUpdated.UTC())
}

func TestAudioJobUpdateMissingNeverCreates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	status := model.JobStatusTranscribed
	err := store.Update(ctx, "ghost", repository.AudioJobUpdate{Status: &status, LastUpdated: time.Now()})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.Get(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAudioJobDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testJob("J1", "user-1")))

	deleted, err := store.Delete(ctx, "J1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "J1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAudioJobListByOwnerOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := testJob("J1", "user-1")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testJob("J2", "user-1")
	other := testJob("J3", "someone-else")

	require.NoError(t, store.Create(ctx, older))
	require.NoError(t, store.Create(ctx, newer))
	require.NoError(t, store.Create(ctx, other))

	jobs, err := store.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "J2", jobs[0].JobID)
	assert.Equal(t, "J1", jobs[1].JobID)
}

func TestAudioJobDeleteAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testJob("J1", "user-1")))
	require.NoError(t, store.Create(ctx, testJob("J2", "user-2")))

	count, err := store.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	jobs, err := store.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func testChat(id, ownerID string) *model.Chat {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.Chat{
		ID:      id,
		OwnerID: ownerID,
		Title:   "What is a fourier transform",
		History: []model.ChatMessage{
			{Role: "user", Text: "What is a fourier transform?"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestChatCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateChat(ctx, testChat("c1", "user-1")))

	got, err := store.GetChat(ctx, "c1", "user-1")
	require.NoError(t, err)
	require.Len(t, got.History, 1)
	assert.Equal(t, "user", got.History[0].Role)
}

func TestChatGetIsOwnerScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateChat(ctx, testChat("c1", "user-1")))

	_, err := store.GetChat(ctx, "c1", "someone-else")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChatAppendMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateChat(ctx, testChat("c1", "user-1")))

	at := time.Now().UTC().Truncate(time.Second).Add(time.Minute)
	err := store.AppendChatMessages(ctx, "c1", "user-1", []model.ChatMessage{
		{Role: "user", Text: "and a laplace transform?"},
		{Role: "model", Text: "A generalization of it."},
	}, at)
	require.NoError(t, err)

	got, err := store.GetChat(ctx, "c1", "user-1")
	require.NoError(t, err)
	require.Len(t, got.History, 3)
	assert.Equal(t, "A generalization of it.", got.History[2].Text)
	assert.Equal(t, at, got.UpdatedAt.UTC())
}

func TestChatAppendMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendChatMessages(context.Background(), "ghost", "user-1", []model.ChatMessage{{Role: "model", Text: "x"}}, time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChatDeleteAndReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateChat(ctx, testChat("c1", "user-1")))
	require.NoError(t, store.CreateChat(ctx, testChat("c2", "user-1")))

	deleted, err := store.DeleteChat(ctx, "c1", "user-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err := store.DeleteAllChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
