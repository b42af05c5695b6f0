package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cdbl-lms/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with env secret", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		assert.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))
		t.Setenv("LMS_AUTH_JWT_SECRET", "0123456789abcdef0123")

		cfg, err := config.Load(path)

		assert.NoError(t, err)
		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 8*time.Hour, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, "0123456789abcdef0123", cfg.Auth.JWTSecret)
	})

	t.Run("file values and env override", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		err := os.WriteFile(path, []byte(`
server:
  port: 8081
auth:
  jwt_secret: "file-secret-0123456789"
rate_limit:
  requests: 10
  window: 30s
`), 0o600)
		assert.NoError(t, err)
		t.Setenv("LMS_SERVER_PORT", "9090")

		cfg, err := config.Load(path)

		assert.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "file-secret-0123456789", cfg.Auth.JWTSecret)
		assert.Equal(t, 10, cfg.RateLimit.Requests)
		assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
		assert.Equal(t, "cdbl_lms", cfg.Database.Name)
	})

	t.Run("short secret rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		assert.NoError(t, os.WriteFile(path, []byte("auth:\n  jwt_secret: short\n"), 0o600))

		_, err := config.Load(path)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_secret")
	})
}
