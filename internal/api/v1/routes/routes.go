package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jfbenitezz/Tutorly-Backend/internal/api/middleware"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/handlers"
)

// Handlers bundles every v1 handler for route registration.
type Handlers struct {
	AudioJobs *handlers.AudioJobHandler
	Chats     *handlers.ChatHandler
	Admin     *handlers.AdminHandler
}

// Register mounts the v1 API under /api/v1. Job and chat routes require the
// caller identity forwarded by the upstream proxy; the admin reset does not,
// matching the deployment where maintenance runs inside the trusted network.
func Register(router *gin.Engine, h Handlers) {
	v1 := router.Group("/api/v1")

	jobs := v1.Group("/jobs", middleware.Identity())
	{
		jobs.POST("", h.AudioJobs.Create)
		jobs.GET("", h.AudioJobs.List)
		jobs.GET("/:id/status", h.AudioJobs.Status)
		jobs.POST("/:id/process", h.AudioJobs.Process)
		jobs.POST("/:id/transcribe", h.AudioJobs.Transcribe)
		jobs.GET("/:id/transcript", h.AudioJobs.Transcript)
		jobs.DELETE("/:id", h.AudioJobs.Cleanup)
	}

	chats := v1.Group("/chats", middleware.Identity())
	{
		chats.POST("", h.Chats.Create)
		chats.GET("", h.Chats.List)
		chats.GET("/:id", h.Chats.Get)
		chats.PUT("/:id", h.Chats.Append)
		chats.DELETE("/:id", h.Chats.Delete)
	}

	admin := v1.Group("/admin")
	{
		admin.DELETE("/reset", h.Admin.Reset)
	}
}
