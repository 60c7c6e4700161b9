//go:build wireinject
// +build wireinject

package app

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/jfbenitezz/Tutorly-Backend/internal/api/server"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/handlers"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/services"
	"github.com/jfbenitezz/Tutorly-Backend/internal/config"
)

// InitializeApplication wires the full service graph from configuration.
func InitializeApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	wire.Build(
		provideStore,
		provideStagingArea,
		provideGateway,
		provideAudioJobDAO,
		provideChatDAO,
		services.NewAudioJobService,
		services.NewChatService,
		services.NewAdminService,
		handlers.NewAudioJobHandler,
		handlers.NewChatHandler,
		handlers.NewAdminHandler,
		provideHandlers,
		server.New,
		newApplication,
	)
	return nil, nil
}
