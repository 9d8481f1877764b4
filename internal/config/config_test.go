package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPath_Defaults(t *testing.T) {
	path := writeConfig(t, "env: dev\n")

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 16, cfg.Remote.MinKeyLength)
	assert.Equal(t, "./data", cfg.FileStore.Dir)
	assert.Equal(t, "memory", cfg.FeaturedCache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.FeaturedCache.TTL)
}

func TestLoadPath_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
env: prod
remote:
  url: postgres://app@db.example.com:5432/travel
  host_pattern: "*.example.com"
  resources: [destinations, tours]
file_store:
  dir: /var/lib/ceylon
  restricted: true
featured_cache:
  driver: redis
  ttl: 2m
`)
	t.Setenv("REMOTE_SERVICE_KEY", "0123456789abcdef")

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://app@db.example.com:5432/travel", cfg.Remote.URL)
	assert.Equal(t, "0123456789abcdef", cfg.Remote.ServiceKey)
	assert.Equal(t, []string{"destinations", "tours"}, cfg.Remote.Resources)
	assert.True(t, cfg.FileStore.Restricted)
	assert.Equal(t, "redis", cfg.FeaturedCache.Driver)
	assert.Equal(t, 2*time.Minute, cfg.FeaturedCache.TTL)
}

func TestLoadPath_Missing(t *testing.T) {
	_, err := LoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
