// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Store, *storage.HistoryStore) {
	t.Helper()
	st, err := storage.NewStoreWithDir(t.TempDir())
	require.NoError(t, err)
	history := storage.NewHistoryStore(st)
	return NewStore(st, history, logging.NewRing(50)), st, history
}

func TestStore_LoginPersistsAndHydrates(t *testing.T) {
	s, st, history := newTestStore(t)

	user := model.User{Username: "alice", FullName: "Alice Smith"}
	require.NoError(t, s.LoginSuccess("tok-1", user))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok-1", s.Token())
	assert.Equal(t, "alice", s.Username())

	// A fresh store over the same files resumes the session.
	resumed := NewStore(st, history, logging.NewRing(50))
	assert.True(t, resumed.Load())
	assert.True(t, resumed.Authenticated())
	assert.Equal(t, "tok-1", resumed.Token())
	require.NotNil(t, resumed.User())
	assert.Equal(t, "Alice Smith", resumed.User().FullName)
}

func TestStore_LoadWithoutPersistedStateStaysLoggedOut(t *testing.T) {
	s, _, _ := newTestStore(t)
	assert.False(t, s.Load())
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestStore_AuthenticatedMatchesToken(t *testing.T) {
	s, _, _ := newTestStore(t)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.LoginSuccess("tok", model.User{Username: "alice"}))
	assert.True(t, s.Authenticated())
	assert.NotEmpty(t, s.Token())

	s.Logout()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
}

func TestStore_LogoutClearsOwnHistoryOnly(t *testing.T) {
	s, st, history := newTestStore(t)

	require.NoError(t, history.Save("alice", []model.ChatMessage{model.NewUserMessage("hi")}))
	require.NoError(t, history.Save("bob", []model.ChatMessage{model.NewUserMessage("yo")}))
	require.NoError(t, s.LoginSuccess("tok", model.User{Username: "alice"}))

	s.Logout()

	aliceMsgs, err := history.Load("alice")
	require.NoError(t, err)
	assert.Empty(t, aliceMsgs)

	bobMsgs, err := history.Load("bob")
	require.NoError(t, err)
	assert.Len(t, bobMsgs, 1)

	assert.False(t, st.Has(storage.KeyToken))
	assert.False(t, st.Has(storage.KeyUser))
}

func TestStore_LogoutRunsObserversAndIsIdempotent(t *testing.T) {
	s, _, _ := newTestStore(t)
	calls := 0
	s.OnLogout(func() { calls++ })

	require.NoError(t, s.LoginSuccess("tok", model.User{Username: "alice"}))
	s.Logout()
	s.Logout() // already logged out, still safe
	assert.Equal(t, 2, calls)
	assert.False(t, s.Authenticated())
}

func TestStore_LoginResetsConversationState(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.SetChatSessionID("old-session")
	s.SetAccounts([]model.Account{{AccountNumber: "1"}})

	require.NoError(t, s.LoginSuccess("tok", model.User{Username: "alice"}))
	assert.Empty(t, s.ChatSessionID())
	assert.Empty(t, s.Accounts())
}

// =============================================================================
// REFRESH SCHEDULER
// =============================================================================

type fakeRefresher struct {
	mu     sync.Mutex
	tokens []string
	err    error
	calls  int
}

func (f *fakeRefresher) Refresh(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.tokens) == 0 {
		return "tok-next", nil
	}
	tok := f.tokens[0]
	if len(f.tokens) > 1 {
		f.tokens = f.tokens[1:]
	}
	return tok, nil
}

func (f *fakeRefresher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestRefreshScheduler_ReplacesToken(t *testing.T) {
	s, st, _ := newTestStore(t)
	require.NoError(t, s.LoginSuccess("tok-old", model.User{Username: "alice"}))

	ref := &fakeRefresher{tokens: []string{"tok-new"}}
	sched := NewRefreshScheduler(s, ref, logging.NewRing(10), 10*time.Millisecond)
	sched.Start()
	defer sched.Stop()

	// SetToken persists before the in-memory swap, so once the new token
	// is visible here the disk copy is already in place.
	require.Eventually(t, func() bool {
		return s.Token() == "tok-new"
	}, time.Second, 5*time.Millisecond)

	var persisted string
	require.NoError(t, st.Get(storage.KeyToken, &persisted))
	assert.Equal(t, "tok-new", persisted)
}

func TestStore_SetTokenPersistsBeforeMemory(t *testing.T) {
	s, st, _ := newTestStore(t)
	require.NoError(t, s.LoginSuccess("tok-old", model.User{Username: "alice"}))

	require.NoError(t, s.SetToken("tok-new"))

	// Both views agree immediately after SetToken returns.
	var persisted string
	require.NoError(t, st.Get(storage.KeyToken, &persisted))
	assert.Equal(t, "tok-new", persisted)
	assert.Equal(t, "tok-new", s.Token())
}

func TestRefreshScheduler_FailureEndsSession(t *testing.T) {
	s, _, history := newTestStore(t)
	require.NoError(t, s.LoginSuccess("tok", model.User{Username: "alice"}))
	require.NoError(t, history.Save("alice", []model.ChatMessage{model.NewUserMessage("hi")}))

	ref := &fakeRefresher{err: errors.New("boom")}
	sched := NewRefreshScheduler(s, ref, logging.NewRing(10), 10*time.Millisecond)
	sched.Start()
	defer sched.Stop()

	require.Eventually(t, func() bool {
		return !s.Authenticated()
	}, time.Second, 5*time.Millisecond)

	// No retry after the failure ends the session.
	got := ref.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, got, ref.callCount())

	msgs, err := history.Load("alice")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestRefreshScheduler_StopPreventsFurtherTicks(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.LoginSuccess("tok", model.User{Username: "alice"}))

	ref := &fakeRefresher{}
	sched := NewRefreshScheduler(s, ref, logging.NewRing(10), 10*time.Millisecond)
	sched.Start()
	sched.Stop()

	before := ref.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, ref.callCount())
}

func TestRefreshScheduler_DefaultInterval(t *testing.T) {
	s, _, _ := newTestStore(t)
	sched := NewRefreshScheduler(s, &fakeRefresher{}, logging.NewRing(10), 0)
	assert.Equal(t, DefaultRefreshInterval, sched.interval)
}
