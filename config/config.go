// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration for the research server.
type Config struct {
	// ListenAddr is the address the HTTP server binds to (default: ":8080")
	ListenAddr string `json:"listen_addr"`
	// SettingsPath is the path of the persisted credentials file
	SettingsPath string `json:"settings_path"`

	// PageSize is the number of results requested per search page (max 50)
	PageSize int64 `json:"page_size"`
	// EngagementMultiplier is the view/subscriber threshold for the
	// engagement filter (default: 1.5)
	EngagementMultiplier float64 `json:"engagement_multiplier"`
	// RegionCode restricts search results to a region (e.g. "JP", "US"; empty = none)
	RegionCode string `json:"region_code"`
	// RelevanceLanguage biases search relevance to a language (e.g. "ja"; empty = none)
	RelevanceLanguage string `json:"relevance_language"`

	// HTTPTimeout is the maximum time to wait for a single outbound request
	HTTPTimeout time.Duration `json:"http_timeout"`
	// APIRequestsPerSecond paces calls to the YouTube Data API (0 = unpaced)
	APIRequestsPerSecond float64 `json:"api_requests_per_second"`
	// QuotaReserve is the minimum estimated API quota units to keep in reserve
	QuotaReserve int `json:"quota_reserve"`

	// LogLevel is the zerolog level ("debug", "info", "warn", "error")
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		ListenAddr:           ":8080",
		SettingsPath:         filepath.Join(home, ".config", "ytresearch", "settings.json"),
		PageSize:             50,
		EngagementMultiplier: 1.5,
		HTTPTimeout:          30 * time.Second,
		APIRequestsPerSecond: 2.5,
		QuotaReserve:         0,
		LogLevel:             "info",
	}
}

// Load loads configuration from environment variables, a .env file, a config
// file, and applies defaults.
// Priority: env vars > .env file > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Load .env into the process environment if present; real env vars win
	_ = godotenv.Load()

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytresearch.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytresearch.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytresearch", "ytresearch.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTRESEARCH_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.ListenAddr = ":" + v
	}
	if v := os.Getenv("YTRESEARCH_SETTINGS_PATH"); v != "" {
		c.SettingsPath = v
	}
	if v := os.Getenv("YTRESEARCH_PAGE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.PageSize = n
		}
	}
	if v := os.Getenv("YTRESEARCH_ENGAGEMENT_MULTIPLIER"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.EngagementMultiplier = f
		}
	}
	if v := os.Getenv("YTRESEARCH_REGION_CODE"); v != "" {
		c.RegionCode = v
	}
	if v := os.Getenv("YTRESEARCH_RELEVANCE_LANGUAGE"); v != "" {
		c.RelevanceLanguage = v
	}
	if v := os.Getenv("YTRESEARCH_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTPTimeout = d
		}
	}
	if v := os.Getenv("YTRESEARCH_API_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.APIRequestsPerSecond = f
		}
	}
	if v := os.Getenv("YTRESEARCH_QUOTA_RESERVE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QuotaReserve = n
		}
	}
	if v := os.Getenv("YTRESEARCH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.SettingsPath == "" {
		return fmt.Errorf("settings_path must not be empty")
	}
	if c.PageSize < 1 || c.PageSize > 50 {
		return fmt.Errorf("page_size must be between 1 and 50")
	}
	if c.EngagementMultiplier <= 0 {
		return fmt.Errorf("engagement_multiplier must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.APIRequestsPerSecond < 0 {
		return fmt.Errorf("api_requests_per_second must be non-negative")
	}
	if c.QuotaReserve < 0 {
		return fmt.Errorf("quota_reserve must be non-negative")
	}
	return nil
}
