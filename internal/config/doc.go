// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// smartchat client.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Backend endpoint, platform, and timeout settings
//   - ChatConfig: Local responder behavior
//   - Platform: Target environment (emulator, device, browser)
//   - Watcher: Live reload of the config file via fsnotify
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - SMARTCHAT_* environment variables
//   - ~/.smartchat/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Resolve the backend for the configured platform:
//
//	base := cfg.BaseURL()
package config
