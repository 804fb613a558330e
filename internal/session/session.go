// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"sync"

	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/storage"
)

// =============================================================================
// SESSION STORE
// =============================================================================

// Store is the single source of truth for authentication state. All reads
// and writes go through its mutex; the UI layers never hold auth state of
// their own.
type Store struct {
	mu sync.RWMutex

	token              string
	user               *model.User
	assistantAvailable bool
	chatSessionID      string
	accounts           []model.Account

	store   *storage.Store
	history *storage.HistoryStore
	log     *logging.Ring

	// onLogout observers run after state is cleared, outside the lock.
	onLogout []func()
}

// NewStore creates a session store backed by the given persistence layer.
func NewStore(st *storage.Store, history *storage.HistoryStore, ring *logging.Ring) *Store {
	return &Store{
		store:   st,
		history: history,
		log:     ring,
	}
}

// Load hydrates the session from persisted state and reports whether a
// prior login was restored. A missing token or user leaves the session
// logged out; a corrupt record is treated the same way.
func (s *Store) Load() bool {
	var token string
	if err := s.store.Get(storage.KeyToken, &token); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("discarding unreadable auth token", map[string]any{"error": err.Error()})
		}
		return false
	}

	var user model.User
	if err := s.store.Get(storage.KeyUser, &user); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("discarding unreadable auth user", map[string]any{"error": err.Error()})
		}
		return false
	}
	if token == "" || user.Username == "" {
		return false
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.log.Info("restored session", map[string]any{"user": user.Username})
	return true
}

// LoginSuccess installs a fresh token and user and persists both. Session
// state from a previous user is discarded.
func (s *Store) LoginSuccess(token string, user model.User) error {
	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.chatSessionID = ""
	s.accounts = nil
	s.mu.Unlock()

	if err := s.store.Set(storage.KeyToken, token); err != nil {
		return err
	}
	if err := s.store.Set(storage.KeyUser, user); err != nil {
		return err
	}
	s.log.Success("logged in", map[string]any{"user": user.Username})
	return nil
}

// SetToken replaces the persisted and in-memory token, as after a refresh.
// The disk write happens first: once Token returns the new value, a
// restart is guaranteed to resume with it.
func (s *Store) SetToken(token string) error {
	if err := s.store.Set(storage.KeyToken, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Logout clears all session state and the current user's persisted chat
// history, then runs the registered logout observers. Persisted state of
// other users is untouched. Safe to call when already logged out.
func (s *Store) Logout() {
	s.mu.Lock()
	user := s.user
	s.token = ""
	s.user = nil
	s.assistantAvailable = false
	s.chatSessionID = ""
	s.accounts = nil
	s.mu.Unlock()

	if err := s.store.Delete(storage.KeyToken); err != nil {
		s.log.Warn("failed to clear persisted token", map[string]any{"error": err.Error()})
	}
	if err := s.store.Delete(storage.KeyUser); err != nil {
		s.log.Warn("failed to clear persisted user", map[string]any{"error": err.Error()})
	}
	if user != nil {
		if err := s.history.Delete(user.Username); err != nil {
			s.log.Warn("failed to clear chat history", map[string]any{"user": user.Username, "error": err.Error()})
		}
		s.log.Info("logged out", map[string]any{"user": user.Username})
	}

	for _, fn := range s.onLogout {
		fn()
	}
}

// OnLogout registers an observer invoked after every logout. Not safe to
// call concurrently with Logout; register observers during startup wiring.
func (s *Store) OnLogout(fn func()) {
	s.onLogout = append(s.onLogout, fn)
}

// Authenticated reports whether a token is held. It is true exactly when
// Token returns a non-empty string.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Username returns the current user's name, or "" when logged out.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Username
}

// AssistantAvailable reports the last known availability of the remote
// assistant.
func (s *Store) AssistantAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assistantAvailable
}

// SetAssistantAvailable records the assistant's availability.
func (s *Store) SetAssistantAvailable(up bool) {
	s.mu.Lock()
	s.assistantAvailable = up
	s.mu.Unlock()
}

// ChatSessionID returns the server-assigned conversation id, or "" when no
// remote exchange has happened yet.
func (s *Store) ChatSessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatSessionID
}

// SetChatSessionID records the server-assigned conversation id.
func (s *Store) SetChatSessionID(id string) {
	s.mu.Lock()
	s.chatSessionID = id
	s.mu.Unlock()
}

// Accounts returns the cached account list, or nil when not yet fetched.
func (s *Store) Accounts() []model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// SetAccounts caches the account list fetched for the current user.
func (s *Store) SetAccounts(accounts []model.Account) {
	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()
}
