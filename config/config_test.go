package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("API_BASE_URL", "http://backend:5000/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://backend:5000", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "dev-session-secret", cfg.Session.Secret)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "Amman", cfg.Weather.City)
	assert.False(t, cfg.Twilio.Enabled())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_BackendRequirements(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_BACKEND", "postgres")
	t.Setenv("DB_URL", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("SESSION_BACKEND", "files")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_FromYAML(t *testing.T) {
	content := `
port: "9090"
api_base_url: "http://api.local"
allowed_origins: ["https://shop.example"]
session:
  backend: redis
  secret: "s3cret"
  ttl: 2h
redis:
  addr: "localhost:6379"
twilio:
  account_sid: "AC1"
  auth_token: "tok"
  phone_number: "+100"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://shop.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Twilio.Enabled())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "INFO", parseLevel("bogus").String())
}

func TestLoad_TrustedProxiesAndTracing(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.TrustedProxies)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "barbershop-web", cfg.Tracing.ServiceName)
	assert.InDelta(t, 1.0, cfg.Tracing.SampleRatio, 0)

	t.Setenv("TRUSTED_PROXIES", "load-balancer")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRUSTED_PROXIES")

	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("OTEL_SAMPLING_RATIO", "2")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLING_RATIO")
}
