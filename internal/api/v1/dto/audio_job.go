package dto

import (
	"encoding/json"
	"time"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/model"
)

// AudioJobResponse is the API projection of a persisted audio job.
type AudioJobResponse struct {
	JobID               string          `json:"jobId"`
	OwnerID             string          `json:"ownerId"`
	StoredName          string          `json:"storedName,omitempty"`
	OriginalName        string          `json:"originalName,omitempty"`
	Status              string          `json:"status"`
	TranscriptionResult json.RawMessage `json:"transcriptionResult,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	LastUpdated         time.Time       `json:"lastUpdated"`
}

// FromAudioJob converts the persistence model to its API projection.
func FromAudioJob(job *model.AudioJob) AudioJobResponse {
	return AudioJobResponse{
		JobID:               job.JobID,
		OwnerID:             job.OwnerID,
		StoredName:          job.StoredName,
		OriginalName:        job.OriginalName,
		Status:              string(job.Status),
		TranscriptionResult: job.TranscriptionResult,
		CreatedAt:           job.CreatedAt,
		LastUpdated:         job.LastUpdated,
	}
}

// CreateJobResult is the answer to a successful upload: the created local
// record plus the remote service's own payload, forwarded as-is.
type CreateJobResult struct {
	Job    AudioJobResponse `json:"job"`
	Remote json.RawMessage  `json:"remote"`
}

// TranscriptResponse projects the stored transcription result. Ready
// distinguishes "no result yet" from "job not found", which is a 404.
type TranscriptResponse struct {
	JobID  string          `json:"jobId"`
	Status string          `json:"status"`
	Ready  bool            `json:"ready"`
	Result json.RawMessage `json:"result,omitempty"`
}

// ResetResponse reports what the administrative wipe removed.
type ResetResponse struct {
	JobsDeleted  int64 `json:"jobsDeleted"`
	ChatsDeleted int64 `json:"chatsDeleted"`
}
