package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:8000/")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 100, cfg.ReportsLimit)
	assert.Equal(t, "auth_token", cfg.AuthCookieName)
	assert.InDelta(t, 37.7749, cfg.MapCenterLat, 1e-9)
	assert.InDelta(t, -122.4194, cfg.MapCenterLng, 1e-9)
	assert.InDelta(t, 500.0, cfg.DangerZoneRadiusMeters, 1e-9)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("API_URL", "https://crisis.example.org")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("POLL_INTERVAL", "2s")
	t.Setenv("REPORTS_LIMIT", "25")
	t.Setenv("DANGER_ZONE_RADIUS_METERS", "750.5")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 25, cfg.ReportsLimit)
	assert.InDelta(t, 750.5, cfg.DangerZoneRadiusMeters, 1e-9)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfig_InvalidAPIURL(t *testing.T) {
	t.Setenv("API_URL", "not a url")

	cfg, err := LoadConfig()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "API_URL")
}

func TestValidate_RejectsNonPositiveInterval(t *testing.T) {
	cfg := &Config{
		APIURL:                 "http://localhost:8000",
		PollInterval:           0,
		ReportsLimit:           10,
		MaxImageBytes:          1,
		DangerZoneRadiusMeters: 1,
		AuthCookieName:         "auth_token",
	}

	assert.ErrorContains(t, cfg.Validate(), "POLL_INTERVAL")
}
