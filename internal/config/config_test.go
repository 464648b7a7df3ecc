package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mapLookup(values map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(mapLookup(nil))
	if err != nil {
		t.Fatalf("from lookup: %v", err)
	}
	want := Config{
		Addr:      DefaultAddr,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Timeout:   DefaultTimeout,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(mapLookup(map[string]string{
		"OPSFORM_ADDR":       "127.0.0.1:9000",
		"OPSFORM_API_URL":    "http://localhost:10005",
		"OPSFORM_AUTH_TOKEN": " secret ",
		"OPSFORM_LOG_FORMAT": "json",
		"OPSFORM_JOURNAL":    "journal.db",
		"OPSFORM_TIMEOUT":    "5s",
		"OPSFORM_THEME_FILE": "themes/acme.yaml",
	}))
	if err != nil {
		t.Fatalf("from lookup: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.APIURL != "http://localhost:10005" {
		t.Fatalf("unexpected addresses: %+v", cfg)
	}
	if cfg.AuthToken != "secret" {
		t.Fatalf("expected trimmed token, got %q", cfg.AuthToken)
	}
	if cfg.ThemeFile != "themes/acme.yaml" {
		t.Fatalf("unexpected theme file %q", cfg.ThemeFile)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.Redacted().AuthToken != "***" {
		t.Fatalf("expected redacted token")
	}
}

func TestFromLookup_RejectsInvalidValues(t *testing.T) {
	for name, values := range map[string]map[string]string{
		"timeout":  {"OPSFORM_TIMEOUT": "soon"},
		"negative": {"OPSFORM_TIMEOUT": "-1s"},
		"format":   {"OPSFORM_LOG_FORMAT": "xml"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := FromLookup(mapLookup(values)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("OPSFORM_THEME=midnight\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("OPSFORM_THEME", "")
	os.Unsetenv("OPSFORM_THEME")

	cfg, err := Load(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "midnight" {
		t.Fatalf("expected theme from env file, got %q", cfg.Theme)
	}
}
