// Package config resolves process configuration from optional .env files and
// OPSFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr      = ":8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultTimeout   = 30 * time.Second
)

// Config is the resolved runtime configuration.
type Config struct {
	Addr      string
	APIURL    string
	AuthToken string
	LogLevel  string
	LogFormat string
	// Journal is the sqlite path for the submission journal. Empty disables
	// persistence.
	Journal  string
	UISchema string
	// ThemeFile is a YAML theme manifest. Theme and Variant select from it.
	ThemeFile string
	Theme     string
	Variant   string
	Timeout   time.Duration
}

// Lookup reads a single variable. Tests swap it for a map.
type Lookup func(key string) (string, bool)

// Load reads the given .env files (missing files are skipped), then builds a
// Config from the process environment. Variables already set in the
// environment win over file values.
func Load(files ...string) (Config, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: stat %s: %w", file, err)
		}
		existing = append(existing, file)
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("config: load env files: %w", err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup for every variable.
func FromLookup(lookup Lookup) (Config, error) {
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	cfg := Config{
		Addr:      get("OPSFORM_ADDR", DefaultAddr),
		APIURL:    get("OPSFORM_API_URL", ""),
		AuthToken: get("OPSFORM_AUTH_TOKEN", ""),
		LogLevel:  get("OPSFORM_LOG_LEVEL", DefaultLogLevel),
		LogFormat: get("OPSFORM_LOG_FORMAT", DefaultLogFormat),
		Journal:   get("OPSFORM_JOURNAL", ""),
		UISchema:  get("OPSFORM_UI_SCHEMA", ""),
		ThemeFile: get("OPSFORM_THEME_FILE", ""),
		Theme:     get("OPSFORM_THEME", ""),
		Variant:   get("OPSFORM_THEME_VARIANT", ""),
		Timeout:   DefaultTimeout,
	}

	if raw := get("OPSFORM_TIMEOUT", ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: OPSFORM_TIMEOUT: %w", err)
		}
		if timeout <= 0 {
			return Config{}, fmt.Errorf("config: OPSFORM_TIMEOUT must be positive, got %s", raw)
		}
		cfg.Timeout = timeout
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("config: OPSFORM_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.AuthToken != "" {
		c.AuthToken = "***"
	}
	return c
}
