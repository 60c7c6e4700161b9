package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jfbenitezz/Tutorly-Backend/internal/api/middleware"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/dto"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/services"
)

// ChatHandler handles conversation requests
type ChatHandler struct {
	service services.ChatService
}

func NewChatHandler(service services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Create opens a new chat seeded with the caller's first message.
func (h *ChatHandler) Create(c *gin.Context) {
	var req dto.CreateChatRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), middleware.CallerID(c), req.Text)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// List returns the caller's chats, most recently updated first.
func (h *ChatHandler) List(c *gin.Context) {
	chats, err := h.service.List(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// Get returns one chat with its full history.
func (h *ChatHandler) Get(c *gin.Context) {
	chat, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// Append records a question/answer exchange on an existing chat.
func (h *ChatHandler) Append(c *gin.Context) {
	var req dto.AppendChatRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if err := h.service.Append(c.Request.Context(), c.Param("id"), middleware.CallerID(c), &req); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chat updated"})
}

// Delete removes a chat and its history.
func (h *ChatHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chat deleted"})
}
