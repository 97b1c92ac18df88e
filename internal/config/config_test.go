package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Empty values count as unset for viper, so the defaults apply.
	for _, key := range []string{"PORT", "DB_DRIVER", "UPLOAD_MAX_IMAGE_MB", "UPLOAD_MAX_VIDEO_MB", "UPLOAD_MAX_FILES", "JWT_TTL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, int64(10<<20), cfg.MaxImageBytes)
	assert.Equal(t, int64(100<<20), cfg.MaxVideoBytes)
	assert.Equal(t, 10, cfg.MaxFiles)
	assert.Equal(t, 720*time.Minute, cfg.JWTTTL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("UPLOAD_MAX_IMAGE_MB", "2")
	t.Setenv("JWT_TTL_MINUTES", "5")
	t.Setenv("LOG_JSON", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, int64(2<<20), cfg.MaxImageBytes)
	assert.Equal(t, 5*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.LogJSON)
}
