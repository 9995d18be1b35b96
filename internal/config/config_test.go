package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, SourceFixture, cfg.Data.Source)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.Equal(t, "user", cfg.Session.Key)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
data:
  source: mongo
jwt:
  secret: file-secret
  expiration: 30m
s3:
  bucket_name: media
session:
  backend: redis
  ttl: 24h
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, SourceMongo, cfg.Data.Source)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DATA_SOURCE", "postgres")
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
