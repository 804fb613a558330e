// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the bounded in-app log buffer.
//
// Every component writes through an injected *Ring rather than a package
// global, so tests can assert on exactly what was logged and the UI can
// render the most recent entries.
//
// # Key Types
//
//   - Ring: Fixed-capacity buffer that evicts the oldest entry first
//   - Entry: One structured record (level, message, data, timestamp)
//   - Level: Severity enumeration (info, warn, error, success)
//
// # Usage
//
//	ring := logging.NewRing(200)
//	ring.Warn("assistant unavailable", map[string]any{"status": 503})
//	for _, e := range ring.Entries() {
//	    fmt.Println(e.Level, e.Message)
//	}
package logging
