package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/auth"
	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/models"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"
	"portfolio-api/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	logr, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.LogJSON})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logr.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg, logr)
	if err != nil {
		logr.Fatalw("Failed to open database", "error", err)
	}
	defer database.Close(db)

	store, err := storage.NewLocalFileStore(cfg.PublicRoot, storage.Policy{
		MaxImageBytes: cfg.MaxImageBytes,
		MaxVideoBytes: cfg.MaxVideoBytes,
	}, logr)
	if err != nil {
		logr.Fatalw("Failed to prepare upload storage", "error", err)
	}

	hub := ws.NewHub(logr)
	go hub.Run(ctx)

	adminRepo := repository.NewAdminRepository(db)
	admins := service.NewAdminService(adminRepo, cfg.RootAdminAccount, logr)
	if err := admins.EnsureRoot(ctx, cfg.RootAdminPassword); err != nil {
		logr.Fatalw("Failed to seed root admin", "error", err)
	}

	router := api.NewRouter(api.Deps{
		Projects:        service.NewProjectService(repository.NewProjectRepository(db), store, hub, logr),
		Professionals:   service.NewProfessionalService(repository.NewProfessionalRepository(db), store, hub, logr),
		Slides:          service.NewSlideService(repository.NewSlideRepository(db), store, hub, logr),
		HomeWords:       service.NewHomeWordService(repository.NewContentRepository[models.HomeWord](db, "Home word"), hub, logr),
		ExperienceWords: service.NewExperienceWordService(repository.NewContentRepository[models.ExperienceWord](db, "Experience word"), hub, logr),
		About:           service.NewAboutService(repository.NewContentRepository[models.About](db, "About entry"), hub, logr),
		Contact:         service.NewContactService(repository.NewContentRepository[models.Contact](db, "Contact entry"), hub, logr),
		Admins:          admins,
		Auth:            service.NewAuthService(adminRepo, auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL), cfg.RootAdminAccount, logr),
		Hub:             hub,
		Uploads:         store.HTTP(),
		MaxFiles:        cfg.MaxFiles,
		DebugErrors:     cfg.DebugErrors,
		Log:             logr,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Infow("Server starting", "port", cfg.Port, "publicRoot", cfg.PublicRoot)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Errorw("Graceful shutdown failed", "error", err)
	}
}
