package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://notes.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, []string{"https://notes.example.com"}, cfg.AllowedOrigins())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.test.yaml")
	content := `
app:
  env: production
server:
  port: 8082
database:
  dsn: user:pass@tcp(localhost:3306)/notes?parseTime=true
jwt:
  secret: file-secret
  expires_in: 1200
cors:
  allow_origins: "http://a.example, http://b.example"
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 8082, cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 1200, cfg.JWT.ExpiresIn)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
