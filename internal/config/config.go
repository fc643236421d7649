// Package config loads application configuration from environment
// variables. All variables use the FLUENTWAVE_ prefix. A .env file in
// the working directory is loaded first if present.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultServerURL is the hosted Fluentwave backend.
const DefaultServerURL = "https://fluentwave-server.onrender.com"

// Config holds all application configuration.
type Config struct {
	// ServerURL is the base URL of the Fluentwave API.
	ServerURL string

	// DBPath overrides the cache database location. Empty means the
	// XDG default.
	DBPath string

	// RequestTimeout bounds a single API request. Default: 15s.
	RequestTimeout time.Duration

	// Seed fixes the shuffle RNG when non-zero. Useful for demos and
	// debugging; 0 means seed from the clock.
	Seed uint64
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	// Missing .env is fine, the environment alone is enough.
	_ = godotenv.Load()

	cfg := &Config{
		ServerURL:      envStr("FLUENTWAVE_SERVER_URL", DefaultServerURL),
		DBPath:         envStr("FLUENTWAVE_DB", ""),
		RequestTimeout: envDuration("FLUENTWAVE_REQUEST_TIMEOUT", 15*time.Second),
		Seed:           envUint("FLUENTWAVE_SEED", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("FLUENTWAVE_SERVER_URL must be an absolute URL, got %q", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("FLUENTWAVE_REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
