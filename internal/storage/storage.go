// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/smartchat-tui/internal/util"
)

// =============================================================================
// KEYS
// =============================================================================

// Stable, predictable storage keys. Chat histories are keyed per username
// via HistoryKey.
const (
	KeyToken = "auth_token"
	KeyUser  = "auth_user"

	historyKeyPrefix = "chat_history_"
)

// HistoryKey returns the storage key for a user's chat transcript.
func HistoryKey(username string) string {
	return historyKeyPrefix + util.SanitizeKey(username)
}

// =============================================================================
// ERRORS
// =============================================================================

// StoreError represents a storage-level error.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = &StoreError{Message: "key not found"}

// =============================================================================
// STORE
// =============================================================================

// Store is a directory-backed key-value store with JSON values.
type Store struct {
	// BaseDir is the directory holding one file per key.
	BaseDir string
}

// NewStore creates a store rooted at ~/.smartchat.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreWithDir(filepath.Join(homeDir, ".smartchat"))
}

// NewStoreWithDir creates a store rooted at a custom directory.
func NewStoreWithDir(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{BaseDir: baseDir}, nil
}

// Set serializes value as JSON and persists it under key.
func (s *Store) Set(key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.filePath(key), data, 0600)
}

// Get reads the value stored under key into out. Returns ErrNotFound when
// no value exists.
func (s *Store) Get(key string, out any) error {
	data, err := os.ReadFile(s.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, out)
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.filePath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Has reports whether a value exists for key.
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.filePath(key))
	return err == nil
}

// Keys lists all stored keys.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return keys, nil
}

// filePath returns the backing file for a key. Keys are sanitized so a
// hostile username cannot escape the base directory.
func (s *Store) filePath(key string) string {
	return filepath.Join(s.BaseDir, util.SanitizeKey(key)+".json")
}
