package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/jfbenitezz/Tutorly-Backend/internal/api/errors"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/middleware"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/services"
)

// AudioJobHandler handles audio job lifecycle requests
type AudioJobHandler struct {
	service services.AudioJobService
}

func NewAudioJobHandler(service services.AudioJobService) *AudioJobHandler {
	return &AudioJobHandler{service: service}
}

// Create accepts a multipart upload under the "file" field, forwards it to
// the transcription service and records the resulting job.
func (h *AudioJobHandler) Create(c *gin.Context) {
	ownerID := middleware.CallerID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("missing file field in multipart form"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	result, err := h.service.Create(c.Request.Context(), ownerID, file, fileHeader.Filename)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List returns the caller's jobs, most recent first.
func (h *AudioJobHandler) List(c *gin.Context) {
	jobs, err := h.service.ListByOwner(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// Status proxies the remote job status.
func (h *AudioJobHandler) Status(c *gin.Context) {
	raw, err := h.service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Process forwards the request body to the remote service unchanged. An
// empty body is allowed; a non-empty body must be valid JSON.
func (h *AudioJobHandler) Process(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("failed to read request body"))
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		middleware.HandleError(c, apierrors.NewBadRequestError("request body must be valid JSON"))
		return
	}

	raw, err := h.service.Process(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Transcribe triggers remote transcription. The optional use_fallback query
// parameter is forwarded only when the client supplied it.
func (h *AudioJobHandler) Transcribe(c *gin.Context) {
	var useFallback *bool
	if v, ok := c.GetQuery("use_fallback"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			middleware.HandleError(c, apierrors.NewValidationError("use_fallback must be a boolean", map[string]string{
				"use_fallback": "must be true or false",
			}))
			return
		}
		useFallback = &parsed
	}

	raw, err := h.service.Transcribe(c.Request.Context(), c.Param("id"), useFallback)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Cleanup removes the job remotely, then locally.
func (h *AudioJobHandler) Cleanup(c *gin.Context) {
	raw, err := h.service.Cleanup(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Transcript serves the locally stored transcription result.
func (h *AudioJobHandler) Transcript(c *gin.Context) {
	res, err := h.service.Transcript(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
