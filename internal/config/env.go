package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is resolved once at start and
// injected into the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	Host        string
	Port        string
	Environment string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Remote transcription service.
	TranscriptionServerURL string
	GatewayTimeout         time.Duration

	// Persistence.
	DatabaseBackend string // "sqlite" or "postgres"
	SQLitePath      string
	PostgresDSN     string

	// Blob staging.
	StagingBackend string // "disk" or "minio"
	UploadDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// LoadEnv loads environment variables from a .env file if one exists.
// A missing file is not an error, variables may be set system-wide instead.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// Load resolves the full configuration from the environment.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:        getEnvOrDefault("HOST", "0.0.0.0"),
		Port:        getEnvOrDefault("PORT", "3000"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		ReadTimeout:  getDurationOrDefault("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getDurationOrDefault("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  getDurationOrDefault("IDLE_TIMEOUT", 60*time.Second),

		TranscriptionServerURL: getEnvOrDefault("TRANSCRIPTION_SERVER_URL", "http://localhost:8000"),
		GatewayTimeout:         getDurationOrDefault("TRANSCRIPTION_TIMEOUT", 120*time.Second),

		DatabaseBackend: getEnvOrDefault("DATABASE_BACKEND", "sqlite"),
		SQLitePath:      getEnvOrDefault("SQLITE_PATH", "data/tutorly.db"),
		PostgresDSN:     strings.TrimSpace(os.Getenv("POSTGRES_DSN")),

		StagingBackend: getEnvOrDefault("STAGING_BACKEND", "disk"),
		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "uploads"),
		MinioEndpoint:  getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "tutorly-staging"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on configuration the process cannot run with.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.TranscriptionServerURL, "http://") && !strings.HasPrefix(c.TranscriptionServerURL, "https://") {
		return fmt.Errorf("TRANSCRIPTION_SERVER_URL must start with http:// or https://")
	}

	switch c.DatabaseBackend {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set when DATABASE_BACKEND=sqlite")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN must be set when DATABASE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown DATABASE_BACKEND %q (expected sqlite or postgres)", c.DatabaseBackend)
	}

	switch c.StagingBackend {
	case "disk":
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR must be set when STAGING_BACKEND=disk")
		}
	case "minio":
		if c.MinioEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT must be set when STAGING_BACKEND=minio")
		}
	default:
		return fmt.Errorf("unknown STAGING_BACKEND %q (expected disk or minio)", c.StagingBackend)
	}

	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
