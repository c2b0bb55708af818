package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/talent")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.App.Port)
	require.Equal(t, 24*time.Hour, cfg.JWT.AccessTTL)
	require.Equal(t, 720*time.Hour, cfg.JWT.RefreshTTL)
	require.Equal(t, 10, cfg.App.BcryptCost)
	require.Equal(t, "uploads", cfg.Upload.Dir)
	require.Equal(t, int64(100<<20), cfg.Upload.MaxBytes)
	require.Equal(t, 5*time.Second, cfg.App.StoreTimeout)
	require.Equal(t, []string{"*"}, cfg.App.AllowOrigins)
	require.Equal(t, 0, cfg.Redis.DB)
	require.False(t, cfg.Database.Reset)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_ACCESS_TTL", "0")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATABASE_RESET", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.App.Port)
	require.Zero(t, cfg.JWT.AccessTTL)
	require.Equal(t, 3, cfg.Redis.DB)
	require.True(t, cfg.Database.Reset)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowOrigins)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "DATABASE_URL=postgres://file\nREDIS_ADDR=redis:6379\nJWT_SECRET=filesecret\nAPP_NAME=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.App.Name)
	require.Equal(t, "postgres://file", cfg.Database.URL)
	require.Equal(t, "filesecret", cfg.JWT.Secret)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
	require.Contains(t, err.Error(), "REDIS_ADDR")
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadInvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("WORKER_COUNT", "0")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("WORKER_COUNT", "1")
	t.Setenv("JWT_ACCESS_TTL", "-1h")
	_, err = Load("")
	require.Error(t, err)
}
