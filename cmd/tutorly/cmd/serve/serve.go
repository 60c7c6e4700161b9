package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfbenitezz/Tutorly-Backend/internal/app"
	"github.com/jfbenitezz/Tutorly-Backend/internal/config"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server

- Serves the audio job and chat API under /api/v1
- Persists jobs to the configured database backend
- Stops gracefully on SIGINT or SIGTERM`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v\n", err)
		}

		logger := app.ProvideLogger(cfg)

		application, err := app.InitializeApplication(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to initialize application: %v\n", err)
		}
		defer application.Close()

		errCh := make(chan error, 1)
		go func() {
			errCh <- application.Server.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server error: %v\n", err)
			}
		case sig := <-quit:
			logger.Info("shutdown signal received", slog.String("signal", sig.String()))

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := application.Server.Shutdown(ctx); err != nil {
				log.Fatalf("Forced shutdown: %v\n", err)
			}
		}
	},
}
