package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/logger"
	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/kendall-kelly/snapfix-api/routes"
	"github.com/kendall-kelly/snapfix-api/services"
	"github.com/kendall-kelly/snapfix-api/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// bootstrap loads configuration, the logger and the database connection
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	config.SetConfig(cfg)

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.GoEnv,
		ServiceName: "snapfix-api",
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := config.ConnectDatabase(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configureServices installs the photo store and pincode lookup singletons
func configureServices(ctx context.Context, cfg *config.Config) error {
	utils.UploadDir = cfg.UploadDir

	if cfg.UsesS3() {
		s3Service, err := services.NewS3Service(ctx, cfg)
		if err != nil {
			return err
		}
		services.SetImageService(services.NewS3ImageService(s3Service))
	} else {
		services.SetImageService(services.NewLocalImageService(cfg.UploadDir))
	}

	services.SetPincodeService(services.NewPincodeService(cfg.PincodeAPIURL))
	return nil
}

func runServer(ctx context.Context) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.GetLogger()

	if err := models.AutoMigrate(config.GetDB()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("Database migration completed successfully")

	if err := configureServices(ctx, cfg); err != nil {
		return err
	}
	log.Info("Photo storage configured", zap.Bool("s3", cfg.UsesS3()), zap.String("upload_dir", cfg.UploadDir))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server is running", zap.String("addr", srv.Addr), zap.String("environment", cfg.GoEnv))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
