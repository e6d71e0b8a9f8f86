// Package config loads the greeter's JSON configuration file.
//
// The file is read once at start-up and the resulting *Config is handed to every
// collector; nothing re-reads it afterwards.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the directory under ~/.config holding config.json.
const AppName = "hello"

// Time formats understood by the datetime row. Any other value disables the clock text.
const (
	TimeFormat12h = "12h"
	TimeFormat24h = "24h"
)

// ErrMissingKey is returned when a required key is absent or null.
var ErrMissingKey = errors.New("missing required key")

// requiredKeys lists the keys that must be present in every config file.
var requiredKeys = []string{"name", "hostname", "location", "units", "lang", "api_key", "time_format"}

// Config holds the user's greeter preferences.
type Config struct {
	Name       string `json:"name"`
	Hostname   string `json:"hostname"`
	Location   string `json:"location"`
	Units      string `json:"units"`
	Lang       string `json:"lang"`
	APIKey     string `json:"api_key"`
	TimeFormat string `json:"time_format"`

	// Song is nil when the key is absent or not a JSON boolean.
	Song *bool `json:"-"`

	// PackageManagers is nil when the feature is disabled.
	PackageManagers ManagerList `json:"package_managers"`
}

// SongEnabled reports whether the now-playing row should be collected.
// Only an explicit false disables it.
func (c *Config) SongEnabled() bool {
	return c.Song == nil || *c.Song
}

// PackageManagersConfigured reports whether package counting is enabled.
func (c *Config) PackageManagersConfigured() bool {
	return c.PackageManagers != nil
}

// ManagerList accepts either a single string or a list of strings.
// A JSON null leaves it nil; an empty list yields a non-nil empty slice.
// Non-string list entries are dropped, and any other JSON value becomes an
// empty list, so the feature stays enabled but counts nothing.
type ManagerList []string

// UnmarshalJSON implements json.Unmarshaler.
func (m *ManagerList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = ManagerList{single}
		return nil
	}

	names := ManagerList{}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		*m = names
		return nil
	}
	for _, entry := range entries {
		var name string
		if string(entry) == "null" {
			continue
		}
		if err := json.Unmarshal(entry, &name); err == nil {
			names = append(names, name)
		}
	}
	*m = names
	return nil
}

// parseSong reads the optional song toggle. Only a JSON boolean is recorded.
func parseSong(raw json.RawMessage) *bool {
	var on bool
	if raw == nil || string(raw) == "null" || json.Unmarshal(raw, &on) != nil {
		return nil
	}
	return &on
}

// DefaultPath returns ~/.config/hello/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName, "config.json"), nil
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a config document and checks that every required key is present.
func Parse(data []byte) (*Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file as JSON: %w", err)
	}
	for _, key := range requiredKeys {
		value, ok := raw[key]
		if !ok || string(value) == "null" {
			return nil, fmt.Errorf("couldn't find %q attribute: %w", key, ErrMissingKey)
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.Song = parseSong(raw["song"])
	return &cfg, nil
}
