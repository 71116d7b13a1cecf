package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "erp-exporter", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "https://api.unleashedsoftware.com", cfg.Unleashed.BaseURL)
	assert.Equal(t, 30, cfg.Unleashed.TimeoutSeconds)
	assert.False(t, cfg.Unleashed.UseLiveAPI)
	assert.Equal(t, "data/schedules.json", cfg.Schedule.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("EXPORTER_APP_PORT", "9090")
	t.Setenv("EXPORTER_UNLEASHED_API_ID", "env-id")
	t.Setenv("EXPORTER_UNLEASHED_USE_LIVE_API", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "env-id", cfg.Unleashed.APIID)
	assert.True(t, cfg.Unleashed.UseLiveAPI)
}

func TestProductionValidation(t *testing.T) {
	t.Setenv("EXPORTER_APP_ENV", "production")
	t.Setenv("EXPORTER_UNLEASHED_USE_LIVE_API", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_id")
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "exporter",
		Password: "p@ss:word/1",
		DBName:   "provenance",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%3Aword%2F1")
	assert.Contains(t, dsn, "sslmode=disable")
}
