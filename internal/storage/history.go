// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"

	"github.com/jeranaias/smartchat-tui/internal/model"
)

// =============================================================================
// CHAT HISTORY STORE
// =============================================================================

// DefaultMaxHistoryMessages caps how many transcript messages are kept per
// user. Oldest messages are dropped first when the cap is exceeded.
const DefaultMaxHistoryMessages = 200

// HistoryStore persists one ordered chat transcript per username, layered
// on the key-value Store.
type HistoryStore struct {
	store *Store

	// MaxMessages limits a stored transcript (0 = unlimited).
	MaxMessages int
}

// NewHistoryStore wraps a Store with chat history operations.
func NewHistoryStore(store *Store) *HistoryStore {
	return &HistoryStore{
		store:       store,
		MaxMessages: DefaultMaxHistoryMessages,
	}
}

// Save persists the user's transcript, trimming to MaxMessages from the
// front so the most recent messages survive.
func (h *HistoryStore) Save(username string, messages []model.ChatMessage) error {
	if h.MaxMessages > 0 && len(messages) > h.MaxMessages {
		messages = messages[len(messages)-h.MaxMessages:]
	}
	return h.store.Set(HistoryKey(username), messages)
}

// Append loads the user's transcript, appends the given messages, and
// saves it back.
func (h *HistoryStore) Append(username string, messages ...model.ChatMessage) error {
	existing, err := h.Load(username)
	if err != nil {
		return err
	}
	return h.Save(username, append(existing, messages...))
}

// Load returns the user's transcript in stored order. A user with no
// history gets an empty transcript, not an error.
func (h *HistoryStore) Load(username string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := h.store.Get(HistoryKey(username), &messages); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return messages, nil
}

// Delete removes the user's transcript. Other users' transcripts are
// untouched.
func (h *HistoryStore) Delete(username string) error {
	return h.store.Delete(HistoryKey(username))
}
