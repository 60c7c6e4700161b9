package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jfbenitezz/Tutorly-Backend/internal/api/server"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/handlers"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/v1/routes"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/gateway/transcription"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository/pg"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/repository/sqlite"
	"github.com/jfbenitezz/Tutorly-Backend/internal/app/staging"
	"github.com/jfbenitezz/Tutorly-Backend/internal/config"
)

// Application bundles the wired components whose lifecycle the command
// layer manages.
type Application struct {
	Server *server.Server
	Store  repository.Store
}

// Close releases resources held by the application.
func (a *Application) Close() error {
	return a.Store.Close()
}

func newApplication(srv *server.Server, store repository.Store) *Application {
	return &Application{Server: srv, Store: store}
}

// ProvideLogger builds the process logger. Production emits JSON for log
// collectors; everything else stays human-readable.
func ProvideLogger(cfg *config.Config) *slog.Logger {
	if cfg.Environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// NewStore opens the store selected by DATABASE_BACKEND. Exported for the
// CLI commands that talk to the database without the full service graph.
func NewStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.DatabaseBackend {
	case "postgres":
		return pg.NewStore(cfg.PostgresDSN)
	case "sqlite":
		return sqlite.NewStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.DatabaseBackend)
	}
}

func provideStore(cfg *config.Config) (repository.Store, error) {
	return NewStore(cfg)
}

func provideStagingArea(cfg *config.Config) (staging.Area, error) {
	switch cfg.StagingBackend {
	case "minio":
		return staging.NewMinioArea(staging.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	case "disk":
		return staging.NewDiskArea(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown staging backend %q", cfg.StagingBackend)
	}
}

func provideGateway(cfg *config.Config, blobs staging.Area) transcription.Gateway {
	return transcription.NewClient(transcription.Config{
		BaseURL: cfg.TranscriptionServerURL,
		Timeout: cfg.GatewayTimeout,
	}, blobs)
}

func provideAudioJobDAO(store repository.Store) repository.AudioJobDAO {
	return store
}

func provideChatDAO(store repository.Store) repository.ChatDAO {
	return store
}

func provideHandlers(jobs *handlers.AudioJobHandler, chats *handlers.ChatHandler, admin *handlers.AdminHandler) routes.Handlers {
	return routes.Handlers{
		AudioJobs: jobs,
		Chats:     chats,
		Admin:     admin,
	}
}
