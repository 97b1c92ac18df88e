// Command migrate_data copies every portfolio table from a SQLite file into
// the database configured by DB_DRIVER, usually PostgreSQL or MySQL. Rows
// already present in the destination are skipped, so it can be rerun.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const batchSize = 200

func main() {
	cfg := config.LoadConfig()
	source := flag.String("source", cfg.DBPath, "SQLite file to copy from")
	flag.Parse()

	logr, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.LogJSON})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logr.Sync()

	if cfg.DBDriver == "" || cfg.DBDriver == "sqlite" || cfg.DBDriver == "sqlite3" {
		logr.Fatalw("Destination must not be SQLite; set DB_DRIVER", "driver", cfg.DBDriver)
	}

	src, err := gorm.Open(sqlite.Open(*source), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		logr.Fatalw("Failed to connect to SQLite", "path", *source, "error", err)
	}
	logr.Infow("Connected to SQLite", "path", *source)

	dst, err := database.Open(context.Background(), cfg, logr)
	if err != nil {
		logr.Fatalw("Failed to open destination", "error", err)
	}
	defer database.Close(dst)

	logr.Info("Starting data migration")
	failed := 0
	for _, step := range []struct {
		table string
		copy  func(src, dst *gorm.DB) (int, error)
	}{
		{"projects", copyTable[models.Project]},
		{"professionals", copyTable[models.Professional]},
		{"slides", copyTable[models.Slide]},
		{"admins", copyTable[models.Admin]},
		{"home_words", copyTable[models.HomeWord]},
		{"experience_words", copyTable[models.ExperienceWord]},
		{"about", copyTable[models.About]},
		{"contact", copyTable[models.Contact]},
	} {
		if !migrateTable(logr, step.table, func() (int, error) { return step.copy(src, dst) }) {
			failed++
		}
	}

	if failed > 0 {
		logr.Fatalw("Migration finished with errors", "failedTables", failed)
	}
	logr.Info("Migration completed")
}

func migrateTable(logr *zap.SugaredLogger, table string, run func() (int, error)) bool {
	logr.Infow("Migrating table", "table", table)
	n, err := run()
	if err != nil {
		logr.Errorw("Failed to migrate table", "table", table, "error", err)
		return false
	}
	logr.Infow("Migrated table", "table", table, "rows", n)
	return true
}

// copyTable reads every T from src and inserts it into dst in one
// transaction.
func copyTable[T any](src, dst *gorm.DB) (int, error) {
	var rows []T
	if err := src.Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	err := dst.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, batchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	return len(rows), nil
}
