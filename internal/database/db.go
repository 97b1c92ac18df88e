package database

import (
	"fmt"

	"portfolio-api/internal/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	cgosqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialector picks the gorm driver for cfg.DBDriver:
//
//	sqlite   pure-Go SQLite file at DBPath (default)
//	sqlite3  cgo SQLite file at DBPath
//	postgres PostgreSQL from DB_DSN or the DB_HOST/DB_* parts
//	mysql    MySQL from DB_DSN or the DB_HOST/DB_* parts
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", "sqlite":
		return sqlite.Open(sqliteDSN(cfg)), nil
	case "sqlite3":
		return cgosqlite.Open(sqliteDSN(cfg)), nil
	case "postgres":
		return postgres.Open(PostgresDSN(cfg)), nil
	case "mysql":
		return mysql.Open(MySQLDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func sqliteDSN(cfg *config.Config) string {
	if cfg.DBDSN != "" {
		return cfg.DBDSN
	}
	// WAL lets list views read while an update is writing.
	return cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func PostgresDSN(cfg *config.Config) string {
	if cfg.DBDSN != "" {
		return cfg.DBDSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
}

// MySQLDSN sets clientFoundRows so UPDATE reports matched rows, not changed
// rows; an update that rewrites identical values must not look like a miss.
func MySQLDSN(cfg *config.Config) string {
	if cfg.DBDSN != "" {
		return cfg.DBDSN
	}
	port := cfg.DBPort
	if port == "" || port == "5432" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, port, cfg.DBName)
}
