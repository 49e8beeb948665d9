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

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
gateway:
  host: 127.0.0.1
  port: 8181
redis:
  addr: redis:6379
  db: 2
storefront:
  request_timeout: 750ms
session:
  ttl: 24h
advice:
  fallback: "cute!"
  max_failures: 5
log:
  level: debug
  encoding: console
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8181", cfg.Gateway.Addr())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 750*time.Millisecond, cfg.Storefront.RequestTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "cute!", cfg.Advice.Fallback)
	assert.Equal(t, uint32(5), cfg.Advice.MaxFailures)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  name: shop\n"))

	require.NoError(t, err)
	assert.Equal(t, "shop", cfg.Server.Name)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, 20, cfg.Gateway.RateBurst)
	assert.Zero(t, cfg.Gateway.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.Storefront.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Advice.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Advice.OpenTimeout)
	assert.Equal(t, 5*time.Second, cfg.Etcd.DialTimeout)
	assert.False(t, cfg.MongoDB.Enabled)
	assert.Equal(t, []string{"stdout"}, cfg.Log.OutputPaths)
	assert.Equal(t, time.Duration(0), cfg.Session.TTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ADORESHOP_REDIS_ADDR", "cache:6380")

	cfg, err := Load(writeConfig(t, "redis:\n  addr: localhost:6379\n"))

	require.NoError(t, err)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load("../../config/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Zero(t, cfg.Gateway.RateLimit, "rate limiting ships disabled")
	assert.Equal(t, 50, cfg.Gateway.RateBurst)
	assert.Equal(t, 3*time.Second, cfg.Advice.Timeout)
}
