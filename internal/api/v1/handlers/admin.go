package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jfbenitezz/Tutorly-Backend/internal/api/middleware"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/services"
)

// AdminHandler handles maintenance endpoints
type AdminHandler struct {
	service services.AdminService
}

func NewAdminHandler(service services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Reset wipes all audio jobs and chats.
func (h *AdminHandler) Reset(c *gin.Context) {
	res, err := h.service.Reset(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
