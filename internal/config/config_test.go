package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pokerdash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		APIURL:             "http://localhost:8000",
		LogLevel:           "INFO",
		Timezone:           "UTC",
		Locale:             "en",
		SnapshotTTL:        30 * time.Minute,
		FetchTimeout:       15 * time.Second,
		MaxConcurrentFetch: 10,
		RefreshWorkerCount: 1,
		RefreshQueueSize:   4,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_APIURL(t *testing.T) {
	tests := []struct {
		name   string
		apiURL string
	}{
		{name: "empty", apiURL: ""},
		{name: "relative", apiURL: "/api"},
		{name: "no scheme", apiURL: "stats.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.APIURL = tt.apiURL

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "API_URL")
		})
	}
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "DEBUG"},
		{level: "INFO"},
		{level: "WARN"},
		{level: "ERROR"},
		{level: "debug"},
		{level: "INVALID", wantErr: true},
		{level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_TimezoneAndLocale(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "Mars/Olympus_Mons"
	cfg.Locale = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE")
	assert.Contains(t, err.Error(), "LOCALE")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel:     "INVALID",
		Timezone:     "UTC",
		Locale:       "en",
		SnapshotTTL:  -time.Second,
		FetchTimeout: 0,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "API_URL cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "SNAPSHOT_TTL_SECONDS")
	assert.Contains(t, errStr, "FETCH_TIMEOUT_SECONDS")
	assert.Contains(t, errStr, "MAX_CONCURRENT_FETCH")
	assert.Contains(t, errStr, "REFRESH_WORKER_COUNT")
	assert.Contains(t, errStr, "REFRESH_QUEUE_SIZE")
}

func TestLocation(t *testing.T) {
	cfg := validConfig()

	cfg.Timezone = "Local"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("API_URL", "https://stats.example.com/")
	t.Setenv("SNAPSHOT_TTL_SECONDS", "60")
	t.Setenv("MAX_CONCURRENT_FETCH", "not-a-number")
	t.Setenv("BLOCKED_USER_IDS", "12, 34,,abc,56")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "https://stats.example.com", cfg.APIURL)
	assert.Equal(t, time.Minute, cfg.SnapshotTTL)
	assert.Equal(t, 10, cfg.MaxConcurrentFetch)
	assert.Equal(t, []int64{12, 34, 56}, cfg.BlockedUserIDs)
}
