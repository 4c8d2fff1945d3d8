// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// APIPrefix is the fixed path prefix every backend route lives under.
const APIPrefix = "/api/v1"

// Defaults applied when neither flags, the config file nor the environment set a value.
const (
	DefaultProfileID            = 1
	DefaultRecommendationsLimit = 50
	DefaultPollInterval         = 2 * time.Second
	DefaultPollRetryLimit       = 3
	DefaultPollMaxBackoff       = 30 * time.Second
	DefaultPollMaxWait          = 30 * time.Minute
)

// Duration is a time.Duration that unmarshals from JSON strings such as "2s".
type Duration time.Duration

// UnmarshalJSON accepts either a Go duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer: %w", err)
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON renders the duration in Go notation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or are provided via CLI flags.
type Config struct {
	// Backend
	APIBaseURL     string   `json:"api_base_url,omitempty"`    // Backend origin; empty means same-origin
	RequestTimeout Duration `json:"request_timeout,omitempty"` // Zero disables the client-side timeout

	// Profile
	ProfileID            int `json:"profile_id,omitempty"`            // Default profile
	RecommendationsLimit int `json:"recommendations_limit,omitempty"` // Fallback limit when settings are unavailable

	// Task polling. PollRetryLimit and PollMaxWait are pointers because an
	// explicit 0 is meaningful: fail on the first transport error, wait forever.
	PollInterval   Duration  `json:"poll_interval,omitempty"`
	PollRetryLimit *int      `json:"poll_retry_limit,omitempty"`
	PollMaxBackoff Duration  `json:"poll_max_backoff,omitempty"`
	PollMaxWait    *Duration `json:"poll_max_wait,omitempty"`

	// Settings storage
	SettingsPath string `json:"settings_path,omitempty"` // JSON file holding client-local settings
	RedisURL     string `json:"redis_url,omitempty"`     // When set, settings are shared through Redis

	Verbose bool `json:"verbose,omitempty"`
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// DurationPtr returns a pointer to d as a Duration.
func DurationPtr(d time.Duration) *Duration {
	v := Duration(d)
	return &v
}

// RetryLimit returns the poll retry limit, 0 when unset.
func (c *Config) RetryLimit() int {
	if c.PollRetryLimit == nil {
		return 0
	}
	return *c.PollRetryLimit
}

// MaxWait returns the total poll wait, 0 (no limit) when unset.
func (c *Config) MaxWait() time.Duration {
	if c.PollMaxWait == nil {
		return 0
	}
	return time.Duration(*c.PollMaxWait)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ProfileID:            DefaultProfileID,
		RecommendationsLimit: DefaultRecommendationsLimit,
		PollInterval:         Duration(DefaultPollInterval),
		PollRetryLimit:       Int(DefaultPollRetryLimit),
		PollMaxBackoff:       Duration(DefaultPollMaxBackoff),
		PollMaxWait:          DurationPtr(DefaultPollMaxWait),
		SettingsPath:         DefaultSettingsPath(),
	}
}

// DefaultSettingsPath returns the per-user settings file location.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "jobsearch_settings.json")
	}
	return filepath.Join(dir, "jobsearch", "settings.json")
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the JOBSEARCH_* environment variables.
// Unset variables leave the corresponding field zero; malformed values are an error.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL:   os.Getenv("JOBSEARCH_API_BASE_URL"),
		SettingsPath: os.Getenv("JOBSEARCH_SETTINGS_PATH"),
		RedisURL:     os.Getenv("JOBSEARCH_REDIS_URL"),
	}

	if s := os.Getenv("JOBSEARCH_PROFILE_ID"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("JOBSEARCH_PROFILE_ID must be a positive integer, got %q", s)
		}
		cfg.ProfileID = v
	}

	if s := os.Getenv("JOBSEARCH_POLL_INTERVAL"); s != "" {
		v, err := time.ParseDuration(s)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("JOBSEARCH_POLL_INTERVAL must be a positive duration, got %q", s)
		}
		cfg.PollInterval = Duration(v)
	}

	if s := os.Getenv("JOBSEARCH_POLL_RETRY_LIMIT"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("JOBSEARCH_POLL_RETRY_LIMIT must be a non-negative integer, got %q", s)
		}
		cfg.PollRetryLimit = Int(v)
	}

	if s := os.Getenv("JOBSEARCH_POLL_MAX_WAIT"); s != "" {
		v, err := time.ParseDuration(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("JOBSEARCH_POLL_MAX_WAIT must be a non-negative duration, got %q", s)
		}
		cfg.PollMaxWait = DurationPtr(v)
	}

	if s := os.Getenv("JOBSEARCH_REQUEST_TIMEOUT"); s != "" {
		v, err := time.ParseDuration(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("JOBSEARCH_REQUEST_TIMEOUT must be a non-negative duration, got %q", s)
		}
		cfg.RequestTimeout = Duration(v)
	}

	cfg.Verbose = os.Getenv("JOBSEARCH_VERBOSE") == "1" || strings.EqualFold(os.Getenv("JOBSEARCH_VERBOSE"), "true")

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ProfileID < 0 {
		return fmt.Errorf("config error: 'profile_id' must be positive")
	}
	if c.RecommendationsLimit < 0 {
		return fmt.Errorf("config error: 'recommendations_limit' must be non-negative")
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("config error: 'poll_interval' must be non-negative")
	}
	if c.RetryLimit() < 0 {
		return fmt.Errorf("config error: 'poll_retry_limit' must be non-negative")
	}
	if c.PollMaxBackoff < 0 || c.MaxWait() < 0 || c.RequestTimeout < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}

	if c.APIBaseURL != "" && !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("config error: 'api_base_url' must start with http:// or https://, got %q", c.APIBaseURL)
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero or unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.SettingsPath == "" {
		result.SettingsPath = defaults.SettingsPath
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}

	if result.ProfileID == 0 {
		result.ProfileID = defaults.ProfileID
	}
	if result.RecommendationsLimit == 0 {
		result.RecommendationsLimit = defaults.RecommendationsLimit
	}
	if result.PollRetryLimit == nil {
		result.PollRetryLimit = defaults.PollRetryLimit
	}

	if result.PollInterval == 0 {
		result.PollInterval = defaults.PollInterval
	}
	if result.PollMaxBackoff == 0 {
		result.PollMaxBackoff = defaults.PollMaxBackoff
	}
	if result.PollMaxWait == nil {
		result.PollMaxWait = defaults.PollMaxWait
	}
	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}

	// Bools cannot distinguish unset from false, so either side enables verbose output
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// BaseURL returns the configured origin with trailing slashes removed.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIBaseURL, "/")
}
