package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_base_url": "https://jobs.example.com/",
		"profile_id": 7,
		"poll_interval": "500ms",
		"poll_retry_limit": 5,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://jobs.example.com/", cfg.APIBaseURL)
	assert.Equal(t, "https://jobs.example.com", cfg.BaseURL())
	assert.Equal(t, 7, cfg.ProfileID)
	assert.Equal(t, Duration(500*time.Millisecond), cfg.PollInterval)
	assert.Equal(t, 5, cfg.RetryLimit())
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{"poll_interval": "soon"}`), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("JOBSEARCH_API_BASE_URL", "http://localhost:8000")
	t.Setenv("JOBSEARCH_PROFILE_ID", "3")
	t.Setenv("JOBSEARCH_POLL_INTERVAL", "250ms")
	t.Setenv("JOBSEARCH_VERBOSE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 3, cfg.ProfileID)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.PollInterval)
	assert.True(t, cfg.Verbose)
}

func TestFromEnv_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"profile id not a number", "JOBSEARCH_PROFILE_ID", "abc"},
		{"profile id zero", "JOBSEARCH_PROFILE_ID", "0"},
		{"poll interval garbage", "JOBSEARCH_POLL_INTERVAL", "fast"},
		{"negative timeout", "JOBSEARCH_REQUEST_TIMEOUT", "-1s"},
		{"negative retry limit", "JOBSEARCH_POLL_RETRY_LIMIT", "-1"},
		{"max wait garbage", "JOBSEARCH_POLL_MAX_WAIT", "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{PollRetryLimit: Int(-1)}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "poll_retry_limit")
}

func TestValidate_BadBaseURL(t *testing.T) {
	cfg := &Config{APIBaseURL: "localhost:8000"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api_base_url")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Default()
	cfg.APIBaseURL = "https://api.example.com"

	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		APIBaseURL: "https://custom.example.com",
		ProfileID:  9,
	}

	merged := partial.MergeWithDefaults(Default())

	// Custom values should be preserved
	assert.Equal(t, "https://custom.example.com", merged.APIBaseURL)
	assert.Equal(t, 9, merged.ProfileID)

	// Default values should fill in empty fields
	assert.Equal(t, DefaultRecommendationsLimit, merged.RecommendationsLimit)
	assert.Equal(t, Duration(DefaultPollInterval), merged.PollInterval)
	assert.Equal(t, DefaultPollRetryLimit, merged.RetryLimit())
	assert.Equal(t, DefaultPollMaxWait, merged.MaxWait())
	assert.NotEmpty(t, merged.SettingsPath)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{APIBaseURL: "http://x", ProfileID: 2}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "http://x", merged.APIBaseURL)
	assert.Equal(t, 2, merged.ProfileID)
	assert.Zero(t, merged.PollInterval)
}

func TestMergeWithDefaults_ExplicitZeroPolling(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"poll_retry_limit": 0, "poll_max_wait": 0}`), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	merged := cfg.MergeWithDefaults(Default())
	require.NotNil(t, merged.PollRetryLimit)
	assert.Equal(t, 0, merged.RetryLimit())
	require.NotNil(t, merged.PollMaxWait)
	assert.Zero(t, merged.MaxWait())
	assert.NoError(t, merged.Validate())
}

func TestFromEnv_PollingZeros(t *testing.T) {
	t.Setenv("JOBSEARCH_POLL_RETRY_LIMIT", "0")
	t.Setenv("JOBSEARCH_POLL_MAX_WAIT", "0s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	merged := cfg.MergeWithDefaults(Default())
	assert.Equal(t, 0, merged.RetryLimit())
	assert.Zero(t, merged.MaxWait())
}
