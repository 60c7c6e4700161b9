package model

import (
	"encoding/json"
	"time"
)

// JobStatus is the lifecycle stage of an audio job as last observed by the
// orchestrator. Remote polling does not feed back into it.
type JobStatus string

const (
	JobStatusUploaded    JobStatus = "uploaded"
	JobStatusProcessing  JobStatus = "processing"
	JobStatusTranscribed JobStatus = "transcribed"
	JobStatusError       JobStatus = "error"
	JobStatusCleaned     JobStatus = "cleaned"
)

// AudioJob represents one audio file's passage through the remote
// transcription pipeline. The job ID is issued by the remote service at
// upload time and is never reused.
type AudioJob struct {
	JobID               string          `json:"jobId" db:"job_id"`
	OwnerID             string          `json:"ownerId" db:"owner_id"`
	StoredName          string          `json:"storedName" db:"stored_name"`
	OriginalName        string          `json:"originalName" db:"original_name"`
	Status              JobStatus       `json:"status" db:"status"`
	TranscriptionResult json.RawMessage `json:"transcriptionResult,omitempty" db:"transcription_result"`
	CreatedAt           time.Time       `json:"createdAt" db:"created_at"`
	LastUpdated         time.Time       `json:"lastUpdated" db:"last_updated"`
}

// TableName returns the table name for AudioJob
func (AudioJob) TableName() string {
	return "audio_jobs"
}

// HasResult reports whether a transcription result has been persisted.
func (j *AudioJob) HasResult() bool {
	return len(j.TranscriptionResult) > 0 && string(j.TranscriptionResult) != "null"
}
