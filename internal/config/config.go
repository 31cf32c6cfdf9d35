// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the devtinder TUI.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.devtinder/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete devtinder client configuration.
type Config struct {
	// General settings
	Version string `toml:"version"`

	// API configuration
	API APIConfig `toml:"api"`

	// Realtime channel configuration
	Channel ChannelConfig `toml:"channel"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// APIConfig contains REST API configuration.
type APIConfig struct {
	// BaseURL is the base URL of the Tinder4Devs API
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
	// MaxRetries is the retry budget for transient errors
	MaxRetries int `toml:"max_retries"`
}

// ChannelConfig contains realtime channel configuration.
type ChannelConfig struct {
	// SocketURL is the websocket endpoint (ws:// or wss://)
	SocketURL string `toml:"socket_url"`
	// ReconnectMaxSecs caps the reconnect backoff in seconds
	ReconnectMaxSecs int `toml:"reconnect_max_secs"`
	// SendsPerSecond rate-limits outbound channel messages (0 = unlimited)
	SendsPerSecond float64 `toml:"sends_per_second"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is "auto", "dark", or "light"
	Theme string `toml:"theme"`
	// ShowShortcuts displays keyboard shortcuts in the status bar
	ShowShortcuts bool `toml:"show_shortcuts"`
	// ToastDurationSecs is the default auto-dismiss time for status toasts
	ToastDurationSecs int `toml:"toast_duration_secs"`
}

// Default returns a config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:     "http://localhost:7777",
			TimeoutSecs: 30,
			MaxRetries:  3,
		},
		Channel: ChannelConfig{
			SocketURL:        "ws://localhost:7777/ws",
			ReconnectMaxSecs: 30,
			SendsPerSecond:   5,
		},
		UI: UIConfig{
			Theme:             "auto",
			ShowShortcuts:     true,
			ToastDurationSecs: 4,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the devtinder config directory (~/.devtinder).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".devtinder"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, applying defaults and env overrides.
// A missing file is not an error; defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over the given config.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadFromPath loads a config from an explicit path with defaults applied.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the default path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// Config may eventually carry tokens; keep it private to the user.
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// ENV OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies DEVTINDER_* environment variables over the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DEVTINDER_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("DEVTINDER_SOCKET_URL"); v != "" {
		c.Channel.SocketURL = v
	}
	if v := os.Getenv("DEVTINDER_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.API.TimeoutSecs = n
		}
	}
	if v := os.Getenv("DEVTINDER_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ErrInvalidConfig wraps one or more validation errors.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	var errs []string

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "api.base_url: must be an absolute http(s) URL")
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, "api.base_url: scheme must be http or https")
	}

	if u, err := url.Parse(c.Channel.SocketURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "channel.socket_url: must be an absolute ws(s) URL")
	} else if u.Scheme != "ws" && u.Scheme != "wss" {
		errs = append(errs, "channel.socket_url: scheme must be ws or wss")
	}

	if c.API.TimeoutSecs <= 0 {
		errs = append(errs, "api.timeout_secs: must be positive")
	}
	if c.API.MaxRetries < 0 {
		errs = append(errs, "api.max_retries: must not be negative")
	}
	if c.Channel.ReconnectMaxSecs <= 0 {
		errs = append(errs, "channel.reconnect_max_secs: must be positive")
	}
	if c.Channel.SendsPerSecond < 0 {
		errs = append(errs, "channel.sends_per_second: must not be negative")
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, "ui.theme: must be auto, dark, or light")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// ReconnectMax returns the reconnect backoff cap as a duration.
func (c *Config) ReconnectMax() time.Duration {
	return time.Duration(c.Channel.ReconnectMaxSecs) * time.Second
}

// ToastDuration returns the default status-toast lifetime.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastDurationSecs) * time.Second
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Global returns the process-wide config, loading it on first use.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide config.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the global config so tests start clean.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
}
