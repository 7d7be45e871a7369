package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("SLA_WINDOW_HOURS", "")
	t.Setenv("MAIL_USERNAME", "")
	t.Setenv("MAIL_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 24*time.Hour, cfg.Lifecycle.SLAWindow())
	assert.Zero(t, cfg.Lifecycle.SweepInterval())
	assert.False(t, cfg.Mail.Configured())
	assert.Equal(t, 587, cfg.Mail.Port)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SLA_WINDOW_HOURS", "48")
	t.Setenv("SLA_SWEEP_INTERVAL_SECONDS", "300")
	t.Setenv("MAIL_USERNAME", "desk@example.com")
	t.Setenv("MAIL_PASSWORD", "secret")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("CLASSIFIER_MODEL_PATH", "/opt/models/clf.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
	assert.Equal(t, 48*time.Hour, cfg.Lifecycle.SLAWindow())
	assert.Equal(t, 5*time.Minute, cfg.Lifecycle.SweepInterval())
	assert.True(t, cfg.Mail.Configured())
	assert.Equal(t, "desk@example.com", cfg.Mail.From)
	assert.Equal(t, "/opt/models/clf.json", cfg.Classifier.ModelPath)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("REDIS_DB", "0")
	t.Setenv("MAIL_PORT", "smtp")
	_, err = Load()
	require.Error(t, err)
}

func TestGetEnvAsInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	t.Setenv("SOME_BOOL", "maybe")
	assert.True(t, getEnvAsBool("SOME_BOOL", true))
}
