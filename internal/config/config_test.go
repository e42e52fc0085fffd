package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
dsn: user:pass@tcp(localhost:3306)/neurobrief
jwt_secret: file-secret
allowed_origins:
  - https://app.example.com
ai:
  provider: anthropic
  model: claude-haiku-4-5-20251001
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "dsn: user:pass@tcp(localhost:3306)/neurobrief\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "dsn: from-file\nport: 5000\n")

	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_DSN", "from-env")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "from-env", cfg.DSN)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadMissingFileNeedsEnvDSN(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := Load(missing)
	assert.Error(t, err)

	t.Setenv("DATABASE_DSN", "env-only")
	cfg, err := Load(missing)
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.DSN)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a port\n")
	_, err := Load(path)
	assert.Error(t, err)
}
