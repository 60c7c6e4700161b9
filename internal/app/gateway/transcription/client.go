package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app/staging"
)

// Gateway wraps the five operations of the remote transcription service.
// Every call is a single request/response; retry policy, if any, belongs to
// the caller.
type Gateway interface {
	Upload(ctx context.Context, h *staging.Handle) (*UploadResult, error)
	Status(ctx context.Context, jobID string) (json.RawMessage, error)
	Process(ctx context.Context, jobID string, options json.RawMessage) (json.RawMessage, error)
	Transcribe(ctx context.Context, jobID string, useFallback *bool) (json.RawMessage, error)
	Cleanup(ctx context.Context, jobID string) (json.RawMessage, error)
}

// Config represents configuration for the remote transcription service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// GatewayError is the normalized failure of a remote call. StatusCode is
// zero when the request never produced a response (transport failure,
// timeout); Body carries the remote error payload verbatim when there is one.
type GatewayError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcription %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transcription %s returned status %d: %s", e.Op, e.StatusCode, string(e.Body))
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// UploadResult is the remote service's answer to an upload. AudioID is the
// job identifier the rest of the pipeline is keyed on; Raw is the full
// payload, kept because the remote schema is not under our control.
type UploadResult struct {
	AudioID string          `json:"audio_id"`
	Raw     json.RawMessage `json:"-"`
}

// Client is the HTTP implementation of Gateway.
type Client struct {
	config Config
	client *http.Client
	blobs  staging.Area
}

// NewClient creates a gateway client for the configured base address.
func NewClient(config Config, blobs staging.Area) *Client {
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		blobs:  blobs,
	}
}

// Upload multipart-encodes the staged blob under the fixed field name "file"
// and posts it to the remote /upload endpoint.
func (c *Client) Upload(ctx context.Context, h *staging.Handle) (*UploadResult, error) {
	blob, err := c.blobs.Open(ctx, h)
	if err != nil {
		return nil, &GatewayError{Op: "upload", Err: err}
	}
	defer blob.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", h.OriginalName)
	if err != nil {
		return nil, &GatewayError{Op: "upload", Err: fmt.Errorf("failed to create form file: %w", err)}
	}
	if _, err := io.Copy(part, blob); err != nil {
		return nil, &GatewayError{Op: "upload", Err: fmt.Errorf("failed to copy file content: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &GatewayError{Op: "upload", Err: fmt.Errorf("failed to close multipart writer: %w", err)}
	}

	raw, err := c.do(ctx, "upload", http.MethodPost, c.config.BaseURL+"/upload", body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	result := &UploadResult{Raw: raw}
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, &GatewayError{Op: "upload", Err: fmt.Errorf("failed to parse upload response: %w", err)}
	}
	if result.AudioID == "" {
		return nil, &GatewayError{Op: "upload", Err: fmt.Errorf("upload response carried no audio_id: %s", string(raw))}
	}

	return result, nil
}

// Status fetches the remote view of a job. Purely informational.
func (c *Client) Status(ctx context.Context, jobID string) (json.RawMessage, error) {
	return c.do(ctx, "status", http.MethodGet, c.config.BaseURL+"/status/"+jobID, nil, "")
}

// Process forwards caller-supplied options verbatim as the request body.
func (c *Client) Process(ctx context.Context, jobID string, options json.RawMessage) (json.RawMessage, error) {
	if len(options) == 0 {
		options = json.RawMessage(`{}`)
	}
	return c.do(ctx, "process", http.MethodPost, c.config.BaseURL+"/process/"+jobID, bytes.NewReader(options), "application/json")
}

// Transcribe requests transcription. When useFallback is supplied it is
// coerced to a literal boolean query parameter; the body is always empty.
func (c *Client) Transcribe(ctx context.Context, jobID string, useFallback *bool) (json.RawMessage, error) {
	url := c.config.BaseURL + "/transcribe/" + jobID
	if useFallback != nil {
		url += "?use_fallback=" + strconv.FormatBool(*useFallback)
	}
	return c.do(ctx, "transcribe", http.MethodPost, url, bytes.NewReader([]byte(`{}`)), "application/json")
}

// Cleanup asks the remote service to discard a job. Repeating cleanup on an
// already-cleaned job is reported as a gateway error, not swallowed.
func (c *Client) Cleanup(ctx context.Context, jobID string) (json.RawMessage, error) {
	return c.do(ctx, "cleanup", http.MethodDelete, c.config.BaseURL+"/cleanup/"+jobID, nil, "")
}

// do executes one remote call and normalizes the outcome. Non-2xx responses
// and transport failures both come back as *GatewayError.
func (c *Client) do(ctx context.Context, op, method, url string, body io.Reader, contentType string) (json.RawMessage, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &GatewayError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		observeRequest(op, "transport_error", time.Since(start))
		return nil, &GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		observeRequest(op, "read_error", time.Since(start))
		return nil, &GatewayError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observeRequest(op, "remote_error", time.Since(start))
		return nil, &GatewayError{Op: op, StatusCode: resp.StatusCode, Body: data}
	}

	observeRequest(op, "success", time.Since(start))
	return data, nil
}
