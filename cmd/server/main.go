package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "portfolio/docs"
	"portfolio/internal/app"
	"portfolio/internal/config"
	"portfolio/internal/handler"
	"portfolio/internal/logging"
	"portfolio/internal/repository/postgres"
	"portfolio/internal/router"
	"portfolio/internal/service"
	s3storage "portfolio/internal/storage/s3"
)

const shutdownTimeout = 10 * time.Second

// @title Portfolio API
// @version 1.0
// @description Bilingual portfolio content API. Spanish is authored; English is machine-translated.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		logging.Default().Fatal("server exited", logging.FieldError, err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.SetDefault(logging.New(cfg.Log.Level, cfg.Log.Format))
	logger := logging.Component("server")

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	projectRepo := postgres.NewProjectRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	postRepo := postgres.NewPostRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	tr, err := app.NewTranslator(&cfg.Translation)
	if err != nil {
		return err
	}
	notifier, err := app.NewNotifier(&cfg.Email)
	if err != nil {
		return err
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	translationSvc := service.NewTranslationService(tr, notifier, cfg.Translation)
	imageSvc := service.NewImageService(s3Client, &cfg.S3)
	projectSvc := service.NewProjectService(projectRepo, translationSvc, imageSvc)
	categorySvc := service.NewCategoryService(categoryRepo)
	postSvc := service.NewPostService(postRepo, translationSvc, imageSvc)
	exportSvc := service.NewExportService(projectRepo, categoryRepo, postRepo, s3Client, &cfg.S3)

	r := router.Setup(authSvc, router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Health:     handler.NewHealthHandler(db),
		Projects:   handler.NewProjectHandler(projectSvc),
		Categories: handler.NewCategoryHandler(categorySvc),
		Posts:      handler.NewPostHandler(postSvc),
		Images:     handler.NewImageHandler(imageSvc),
		Translate:  handler.NewTranslateHandler(translationSvc),
		Export:     handler.NewExportHandler(exportSvc),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
