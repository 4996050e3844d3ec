package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests set env vars via t.Setenv, so none of them run in parallel.

const testSecret = "0123456789abcdef0123456789abcdef" // 32 chars

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HELLENIKA_DATABASE_URL", "postgres://localhost:5432/hellenika_test")
	t.Setenv("HELLENIKA_AUTH_JWT_SECRET", testSecret)
}

func TestLoadWithDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 5, cfg.Auth.LoginRateLimit)
	assert.Equal(t, 60, cfg.Auth.LoginRateWindowSeconds)
	assert.Equal(t, 10, cfg.Study.SessionSize)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HELLENIKA_SERVER_PORT", "9090")
	t.Setenv("HELLENIKA_SERVER_LOG_LEVEL", "debug")
	t.Setenv("HELLENIKA_STUDY_SESSION_SIZE", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5, cfg.Study.SessionSize)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("HELLENIKA_DATABASE_URL", "postgres://localhost:5432/hellenika_test")
	t.Setenv("HELLENIKA_AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("HELLENIKA_DATABASE_URL", "postgres://localhost:5432/hellenika_test")
	t.Setenv("HELLENIKA_AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HELLENIKA_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}
