// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"sync"
	"time"
)

// =============================================================================
// LEVELS
// =============================================================================

// Level classifies a log entry.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
	LevelSuccess
)

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// =============================================================================
// ENTRIES
// =============================================================================

// Entry is a single log record.
type Entry struct {
	Time    time.Time      `json:"time"`
	Level   Level          `json:"level"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// =============================================================================
// RING BUFFER
// =============================================================================

// DefaultCapacity is the entry limit used when no capacity is configured.
const DefaultCapacity = 100

// Ring is a fixed-capacity log buffer. When full, the oldest entry is
// evicted first. Safe for concurrent use.
type Ring struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// NewRing creates a ring holding at most max entries. A non-positive max
// falls back to DefaultCapacity.
func NewRing(max int) *Ring {
	if max <= 0 {
		max = DefaultCapacity
	}
	return &Ring{max: max}
}

// Add appends an entry, evicting the oldest if the ring is full.
func (r *Ring) Add(level Level, message string, data map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Data:    data,
	})
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

// Info records an informational entry.
func (r *Ring) Info(message string, data map[string]any) { r.Add(LevelInfo, message, data) }

// Warn records a warning entry.
func (r *Ring) Warn(message string, data map[string]any) { r.Add(LevelWarn, message, data) }

// Error records an error entry.
func (r *Ring) Error(message string, data map[string]any) { r.Add(LevelError, message, data) }

// Success records a success entry.
func (r *Ring) Success(message string, data map[string]any) { r.Add(LevelSuccess, message, data) }

// Entries returns a snapshot of the buffered entries, oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of buffered entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Capacity returns the configured maximum number of entries.
func (r *Ring) Capacity() int {
	return r.max
}

// Clear discards all buffered entries.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
