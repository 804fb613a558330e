// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// PLATFORMS
// =============================================================================

// Platform selects which backend base URL variant the client talks to.
// The three variants mirror the deployment targets: the Android emulator
// (which reaches the host machine through 10.0.2.2), a physical device on
// the LAN, and a local browser/desktop run.
type Platform string

const (
	PlatformEmulator Platform = "emulator"
	PlatformDevice   Platform = "device"
	PlatformBrowser  Platform = "browser"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete smartchat client configuration.
type Config struct {
	API  APIConfig  `toml:"api"`
	Chat ChatConfig `toml:"chat"`
	Log  LogConfig  `toml:"log"`
}

// APIConfig selects and shapes the backend endpoint.
type APIConfig struct {
	// Platform picks the base URL variant: "emulator", "device", "browser".
	Platform Platform `toml:"platform"`
	// EmulatorURL reaches a backend on the emulator host machine.
	EmulatorURL string `toml:"emulator_url"`
	// DeviceURL reaches a backend from a physical device on the LAN.
	DeviceURL string `toml:"device_url"`
	// BrowserURL reaches a backend on the local machine.
	BrowserURL string `toml:"browser_url"`
}

// ChatConfig shapes the chat dispatcher.
type ChatConfig struct {
	// LocalDelayMs is the minimum artificial latency before a locally
	// produced reply, so the bot does not answer uncannily fast.
	LocalDelayMs int `toml:"local_delay_ms"`
	// RefreshIntervalMins is how often the session token is renewed.
	RefreshIntervalMins int `toml:"refresh_interval_mins"`
	// HistoryMaxMessages caps a persisted per-user transcript.
	HistoryMaxMessages int `toml:"history_max_messages"`
}

// LogConfig shapes the in-app log buffer.
type LogConfig struct {
	// MaxEntries bounds the log ring; oldest entries are evicted first.
	MaxEntries int `toml:"max_entries"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Platform:    PlatformBrowser,
			EmulatorURL: "http://10.0.2.2:5000/api",
			DeviceURL:   "http://192.168.1.100:5000/api",
			BrowserURL:  "http://localhost:5000/api",
		},
		Chat: ChatConfig{
			LocalDelayMs:        600,
			RefreshIntervalMins: 15,
			HistoryMaxMessages:  200,
		},
		Log: LogConfig{
			MaxEntries: 100,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultPath returns the config file location (~/.smartchat/config.toml).
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".smartchat", "config.toml"), nil
}

// Load reads configuration from the default path. A missing file is not an
// error; defaults apply. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies SMARTCHAT_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if platform := os.Getenv("SMARTCHAT_PLATFORM"); platform != "" {
		c.API.Platform = Platform(platform)
	}
	if url := os.Getenv("SMARTCHAT_API_URL"); url != "" {
		// A full URL override wins for whichever platform is active.
		switch c.API.Platform {
		case PlatformEmulator:
			c.API.EmulatorURL = url
		case PlatformDevice:
			c.API.DeviceURL = url
		default:
			c.API.BrowserURL = url
		}
	}
	if delay := os.Getenv("SMARTCHAT_LOCAL_DELAY_MS"); delay != "" {
		if v, err := strconv.Atoi(delay); err == nil && v >= 0 {
			c.Chat.LocalDelayMs = v
		}
	}
	if mins := os.Getenv("SMARTCHAT_REFRESH_MINS"); mins != "" {
		if v, err := strconv.Atoi(mins); err == nil && v > 0 {
			c.Chat.RefreshIntervalMins = v
		}
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.API.Platform {
	case PlatformEmulator, PlatformDevice, PlatformBrowser:
	default:
		return fmt.Errorf("unknown platform %q (want emulator, device, or browser)", c.API.Platform)
	}
	if c.Chat.RefreshIntervalMins <= 0 {
		return fmt.Errorf("refresh_interval_mins must be positive, got %d", c.Chat.RefreshIntervalMins)
	}
	if c.Log.MaxEntries <= 0 {
		return fmt.Errorf("log max_entries must be positive, got %d", c.Log.MaxEntries)
	}
	return nil
}

// BaseURL resolves the backend base URL for the configured platform.
func (c *Config) BaseURL() string {
	var url string
	switch c.API.Platform {
	case PlatformEmulator:
		url = c.API.EmulatorURL
	case PlatformDevice:
		url = c.API.DeviceURL
	default:
		url = c.API.BrowserURL
	}
	return strings.TrimSuffix(url, "/")
}

// Save writes the configuration as TOML to the given path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
