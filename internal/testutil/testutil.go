// Package testutil builds the in-memory database and file store the package
// tests share.
package testutil

import (
	"bytes"
	"testing"

	"portfolio-api/internal/database"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/spf13/afero"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives as long as t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get database instance: %v", err)
	}
	// Every pooled connection to ":memory:" would get its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewFileStore returns a FileStore over an in-memory filesystem.
func NewFileStore(t testing.TB) (*storage.FileStore, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	return storage.NewFileStore(fsys, storage.DefaultPolicy(), logger.Nop()), fsys
}

// PNGHeader is enough of a PNG for content sniffing.
var PNGHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// PNG returns a small upload that passes the default policy.
func PNG(name string) storage.Upload {
	body := append(append([]byte{}, PNGHeader...), []byte(name)...)
	return storage.Upload{Filename: name, Size: int64(len(body)), Body: bytes.NewReader(body)}
}
