package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/jfbenitezz/Tutorly-Backend/internal/api/errors"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/middleware"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/dto"
)

type stubAudioJobService struct {
	createResult  *dto.CreateJobResult
	createErr     error
	statusRaw     json.RawMessage
	statusErr     error
	processRaw    json.RawMessage
	transcribeRaw json.RawMessage
	cleanupRaw    json.RawMessage
	transcript    *dto.TranscriptResponse
	transcriptErr error
	list          []dto.AudioJobResponse

	gotOwnerID      string
	gotOriginalName string
	gotFileContents []byte
	gotOptions      json.RawMessage
	gotFallback     *bool
}

func (s *stubAudioJobService) Create(_ context.Context, ownerID string, file io.Reader, originalName string) (*dto.CreateJobResult, error) {
	s.gotOwnerID = ownerID
	s.gotOriginalName = originalName
	s.gotFileContents, _ = io.ReadAll(file)
	return s.createResult, s.createErr
}

func (s *stubAudioJobService) Status(_ context.Context, _ string) (json.RawMessage, error) {
	return s.statusRaw, s.statusErr
}

func (s *stubAudioJobService) Process(_ context.Context, _ string, options json.RawMessage) (json.RawMessage, error) {
	s.gotOptions = options
	return s.processRaw, nil
}

func (s *stubAudioJobService) Transcribe(_ context.Context, _ string, useFallback *bool) (json.RawMessage, error) {
	s.gotFallback = useFallback
	return s.transcribeRaw, nil
}

func (s *stubAudioJobService) Cleanup(_ context.Context, _ string) (json.RawMessage, error) {
	return s.cleanupRaw, nil
}

func (s *stubAudioJobService) Transcript(_ context.Context, _ string) (*dto.TranscriptResponse, error) {
	return s.transcript, s.transcriptErr
}

func (s *stubAudioJobService) ListByOwner(_ context.Context, ownerID string) ([]dto.AudioJobResponse, error) {
	s.gotOwnerID = ownerID
	return s.list, nil
}

func newJobRouter(svc *stubAudioJobService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAudioJobHandler(svc)
	group := router.Group("/api/v1/jobs", middleware.Identity())
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id/status", h.Status)
	group.POST("/:id/process", h.Process)
	group.POST("/:id/transcribe", h.Transcribe)
	group.GET("/:id/transcript", h.Transcript)
	group.DELETE("/:id", h.Cleanup)
	return router
}

func multipartBody(t *testing.T, field, filename, contents string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreateJob_Success(t *testing.T) {
	svc := &stubAudioJobService{
		createResult: &dto.CreateJobResult{
			Job:    dto.AudioJobResponse{JobID: "audio-1", OwnerID: "user-1", Status: "uploaded"},
			Remote: json.RawMessage(`{"audio_id":"audio-1"}`),
		},
	}
	router := newJobRouter(svc)

	body, contentType := multipartBody(t, "file", "lecture.mp3", "audio bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", svc.gotOwnerID)
	assert.Equal(t, "lecture.mp3", svc.gotOriginalName)
	assert.Equal(t, []byte("audio bytes"), svc.gotFileContents)
}

func TestCreateJob_MissingFileField(t *testing.T) {
	router := newJobRouter(&stubAudioJobService{})

	body, contentType := multipartBody(t, "wrong_field", "a.mp3", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateJob_MissingIdentity(t *testing.T) {
	router := newJobRouter(&stubAudioJobService{})

	body, contentType := multipartBody(t, "file", "a.mp3", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateJob_GatewayErrorForwardsRemoteBody(t *testing.T) {
	svc := &stubAudioJobService{
		createErr: apierrors.NewGatewayError("transcription service error", 503, []byte(`{"detail":"model loading"}`)),
	}
	router := newJobRouter(svc)

	body, contentType := multipartBody(t, "file", "a.mp3", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"detail":"model loading"}`, w.Body.String())
}

func TestJobStatus_ProxiesRemotePayload(t *testing.T) {
	svc := &stubAudioJobService{statusRaw: json.RawMessage(`{"status":"processing"}`)}
	router := newJobRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/audio-1/status", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"processing"}`, w.Body.String())
}

func TestProcessJob_ForwardsBody(t *testing.T) {
	svc := &stubAudioJobService{processRaw: json.RawMessage(`{"ok":true}`)}
	router := newJobRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/audio-1/process",
		bytes.NewReader([]byte(`{"language":"es"}`)))
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"language":"es"}`, string(svc.gotOptions))
}

func TestProcessJob_RejectsMalformedJSON(t *testing.T) {
	router := newJobRouter(&stubAudioJobService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/audio-1/process",
		bytes.NewReader([]byte(`{broken`)))
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscribeJob_FallbackParam(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode int
		want     *bool
	}{
		{"absent", "", http.StatusOK, nil},
		{"true", "?use_fallback=true", http.StatusOK, boolPtr(true)},
		{"false", "?use_fallback=false", http.StatusOK, boolPtr(false)},
		{"garbage", "?use_fallback=banana", http.StatusUnprocessableEntity, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAudioJobService{transcribeRaw: json.RawMessage(`{}`)}
			router := newJobRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/audio-1/transcribe"+tt.query, nil)
			req.Header.Set("X-User-ID", "user-1")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.want == nil {
				assert.Nil(t, svc.gotFallback)
			} else {
				require.NotNil(t, svc.gotFallback)
				assert.Equal(t, *tt.want, *svc.gotFallback)
			}
		})
	}
}

func TestTranscript_NotFound(t *testing.T) {
	svc := &stubAudioJobService{transcriptErr: apierrors.NewNotFoundError("audio job")}
	router := newJobRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/ghost/transcript", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListJobs_UsesCallerIdentity(t *testing.T) {
	svc := &stubAudioJobService{list: []dto.AudioJobResponse{{JobID: "a"}}}
	router := newJobRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("X-User-ID", "user-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-7", svc.gotOwnerID)
}

func boolPtr(b bool) *bool { return &b }
