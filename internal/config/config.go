// Package config loads and saves the global timeclerk configuration.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the persisted global configuration. Flags override these values
// per invocation; SaveConfig never runs implicitly.
type Config struct {
	// Server is the base URL of the time-tracking aggregation service.
	Server string `json:"server,omitempty"`

	// Days is how many days back the timeline loads. Zero means the
	// service's default window.
	Days int `json:"days,omitempty"`

	// Timezone is the IANA zone used to localize wire timestamps (and hence
	// to derive calendar days). Empty means the system's local zone.
	Timezone string `json:"timezone,omitempty"`

	// DebugLog is an optional path; when set, the TUI appends diagnostic
	// lines there.
	DebugLog string `json:"debugLog,omitempty"`
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.timeclerk).
	if v := strings.TrimSpace(os.Getenv("TIMECLERK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".timeclerk"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the config file; a missing file yields the zero config.
func LoadConfig() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the config atomically (temp file + rename) so concurrent
// invocations never leave a torn file behind.
func SaveConfig(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "config.json.*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, 0o600)
	return os.Rename(tmp, path)
}
