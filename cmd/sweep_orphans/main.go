// Command sweep_orphans deletes uploaded files that no record references.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "list orphaned files without deleting them")
	minAge := flag.Duration("min-age", time.Hour, "leave files younger than this alone")
	flag.Parse()

	cfg := config.LoadConfig()
	logr, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.LogJSON})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logr.Sync()

	ctx := context.Background()
	db, err := database.Open(ctx, cfg, logr)
	if err != nil {
		logr.Fatalw("Failed to open database", "error", err)
	}
	defer database.Close(db)

	store, err := storage.NewLocalFileStore(cfg.PublicRoot, storage.DefaultPolicy(), logr)
	if err != nil {
		logr.Fatalw("Failed to open upload storage", "error", err)
	}

	sweeper := service.NewSweeper(store, map[storage.Kind]service.Referencer{
		storage.KindProjects:      repository.NewProjectRepository(db),
		storage.KindProfessionals: repository.NewProfessionalRepository(db),
		storage.KindSlides:        repository.NewSlideRepository(db),
	}, *minAge, logr)

	report, err := sweeper.Sweep(ctx, *dryRun)
	if err != nil {
		logr.Fatalw("Sweep failed", "error", err)
	}
	logr.Infow("Sweep completed",
		"scanned", report.Scanned,
		"orphans", len(report.Orphans),
		"recent", report.Recent,
		"failed", len(report.Failed),
		"dryRun", *dryRun,
	)
}
