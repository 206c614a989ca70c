package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, filepath.Join("static", "uploads"), cfg.UploadDir)
	assert.Equal(t, 50, cfg.UploadMaxSizeMB)
	assert.Equal(t, 60, cfg.UploadsOrphanTTLMinutes)
	assert.False(t, cfg.UploadsCleanupEnabled)
	assert.Equal(t, 5, cfg.HomePostLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("UPLOAD_DIR", "/data/uploads")
	t.Setenv("UPLOAD_MAX_SIZE_MB", "5")
	t.Setenv("UPLOADS_CLEANUP_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	Reset()
	t.Cleanup(Reset)

	cfg := Load()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "/data/uploads", cfg.UploadDir)
	assert.Equal(t, 5, cfg.UploadMaxSizeMB)
	assert.True(t, cfg.UploadsCleanupEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestGetCaches(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first := Get()
	t.Setenv("APP_PORT", "9999")
	second := Get()

	// Get must not re-read the environment once loaded.
	assert.Equal(t, first.AppPort, second.AppPort)
}
