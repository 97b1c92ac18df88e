package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	// Database
	DBDriver   string // sqlite, sqlite3, postgres, mysql
	DBDSN      string // used verbatim when set
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Files are served from PublicRoot; uploads land under PublicRoot/uploads/<kind>.
	PublicRoot string

	// Uploads
	MaxImageBytes int64
	MaxVideoBytes int64
	MaxFiles      int

	// Auth
	JWTSecret         string
	JWTTTL            time.Duration
	RootAdminAccount  string
	RootAdminPassword string // seeds the root account when it is missing

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// DebugErrors echoes internal error text in 500 responses.
	DebugErrors bool
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Port:              v.GetString("PORT"),
		DBDriver:          v.GetString("DB_DRIVER"),
		DBDSN:             v.GetString("DB_DSN"),
		DBPath:            v.GetString("DB_PATH"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		PublicRoot:        v.GetString("PUBLIC_ROOT"),
		MaxImageBytes:     v.GetInt64("UPLOAD_MAX_IMAGE_MB") << 20,
		MaxVideoBytes:     v.GetInt64("UPLOAD_MAX_VIDEO_MB") << 20,
		MaxFiles:          v.GetInt("UPLOAD_MAX_FILES"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTTTL:            time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		RootAdminAccount:  v.GetString("ROOT_ADMIN_ACCOUNT"),
		RootAdminPassword: v.GetString("ROOT_ADMIN_PASSWORD"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFile:           v.GetString("LOG_FILE"),
		LogJSON:           v.GetBool("LOG_JSON"),
		DebugErrors:       v.GetBool("DEBUG_ERRORS"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "./portfolio.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "portfolio")
	v.SetDefault("DB_NAME", "portfolio")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PUBLIC_ROOT", "./public")
	v.SetDefault("UPLOAD_MAX_IMAGE_MB", 10)
	v.SetDefault("UPLOAD_MAX_VIDEO_MB", 100)
	v.SetDefault("UPLOAD_MAX_FILES", 10)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL_MINUTES", 720)
	v.SetDefault("ROOT_ADMIN_ACCOUNT", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("DEBUG_ERRORS", true)
}
