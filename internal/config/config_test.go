package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.RateLimitRPS)

	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.Weather.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, 600*time.Second, cfg.Weather.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.Weather.MinRequestInterval)

	assert.Equal(t, 25, cfg.Batch.Size)
	assert.Equal(t, 100*time.Millisecond, cfg.Batch.Pacing)
	assert.Equal(t, 4, cfg.Batch.InferenceWorkers)
	assert.Equal(t, 50, cfg.Batch.InferenceBuffer)

	assert.Equal(t, "./data/model_bundle.json", cfg.Model.BundlePath)
	assert.Equal(t, 0.7, cfg.Model.PrimaryWeight)
	assert.Equal(t, 0.3, cfg.Model.SecondaryWeight)

	assert.Empty(t, cfg.Registry.DBPath)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BATCH_SIZE", "10")
	t.Setenv("BATCH_PACING", "250ms")
	t.Setenv("WEATHER_CACHE_TTL", "5m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TERRAIN_DB_PATH", "/var/lib/ignis/terrain.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Batch.Size)
	assert.Equal(t, 250*time.Millisecond, cfg.Batch.Pacing)
	assert.Equal(t, 5*time.Minute, cfg.Weather.CacheTTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/var/lib/ignis/terrain.db", cfg.Registry.DBPath)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("BATCH_PACING", "soon")
	t.Setenv("ENSEMBLE_PRIMARY_WEIGHT", "heavy")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 100*time.Millisecond, cfg.Batch.Pacing)
	assert.Equal(t, 0.7, cfg.Model.PrimaryWeight)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"zero batch size", "BATCH_SIZE", "0"},
		{"zero workers", "INFERENCE_WORKERS", "0"},
		{"negative cache ttl", "WEATHER_CACHE_TTL", "-1s"},
		{"negative request interval", "WEATHER_MIN_INTERVAL", "-5s"},
		{"negative ensemble weight", "ENSEMBLE_PRIMARY_WEIGHT", "-0.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsWeightsNotSummingToOne(t *testing.T) {
	t.Setenv("ENSEMBLE_PRIMARY_WEIGHT", "0.7")
	t.Setenv("ENSEMBLE_SECONDARY_WEIGHT", "0.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1")
}
