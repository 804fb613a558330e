// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/jeranaias/smartchat-tui/internal/api"
	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/session"
	"github.com/jeranaias/smartchat-tui/internal/storage"
)

// DefaultLocalDelay is the minimum time a local reply takes to appear.
// Instant replies read as broken; a short pause reads as thinking.
const DefaultLocalDelay = 600 * time.Millisecond

// Backend is the slice of the API surface the dispatcher needs.
type Backend interface {
	SendChat(ctx context.Context, message, sessionID string) (*api.ChatResponse, error)
	AssistantStatus(ctx context.Context) (bool, error)
	Accounts(ctx context.Context) ([]model.Account, error)
	Transactions(ctx context.Context, limit int) ([]model.Transaction, error)
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher turns a typed message into one or more bot replies. Exactly
// one of the remote assistant or the local responder produces the output
// for any given message.
type Dispatcher struct {
	api        Backend
	session    *session.Store
	history    *storage.HistoryStore
	log        *logging.Ring
	localDelay time.Duration
}

// NewDispatcher creates a dispatcher. A negative localDelay falls back to
// DefaultLocalDelay; zero disables the artificial pause.
func NewDispatcher(backend Backend, sess *session.Store, history *storage.HistoryStore, ring *logging.Ring, localDelay time.Duration) *Dispatcher {
	if localDelay < 0 {
		localDelay = DefaultLocalDelay
	}
	return &Dispatcher{
		api:        backend,
		session:    sess,
		history:    history,
		log:        ring,
		localDelay: localDelay,
	}
}

// Probe checks the remote assistant and records the result on the session.
// A failed probe means the assistant is unavailable; it is not an error to
// the caller.
func (d *Dispatcher) Probe(ctx context.Context) bool {
	up, err := d.api.AssistantStatus(ctx)
	if err != nil {
		d.log.Warn("assistant status probe failed", map[string]any{"error": err.Error()})
		up = false
	}
	d.session.SetAssistantAvailable(up)
	return up
}

// Send processes one user message and returns the bot replies. The user
// message is persisted before any reply is produced, so the transcript
// keeps it even if reply generation fails.
func (d *Dispatcher) Send(ctx context.Context, text string) ([]model.ChatMessage, error) {
	username := d.session.Username()

	userMsg := model.NewUserMessage(text)
	d.persist(username, userMsg)

	if !IsLocalCommand(text) && d.session.AssistantAvailable() {
		replies, ok := d.sendRemote(ctx, text, username)
		if ok {
			return replies, nil
		}
		// Remote failed; the assistant is now marked unavailable and the
		// local responder takes over for this message.
	}

	reply := d.respondLocally(ctx, text)
	d.pause(ctx)
	botMsg := model.NewBotMessage(reply)
	d.persist(username, botMsg)
	return []model.ChatMessage{botMsg}, nil
}

// sendRemote asks the remote assistant. On success it returns the replies
// and true. On any failure it marks the assistant unavailable, logs, and
// returns false so the caller falls back to the local responder.
func (d *Dispatcher) sendRemote(ctx context.Context, text, username string) ([]model.ChatMessage, bool) {
	resp, err := d.api.SendChat(ctx, text, d.session.ChatSessionID())
	if err != nil {
		d.session.SetAssistantAvailable(false)
		if errors.Is(err, api.ErrServiceUnavailable) {
			d.log.Warn("assistant unavailable, falling back to local responses", map[string]any{"error": err.Error()})
		} else {
			d.log.Error("assistant request failed, falling back to local responses", map[string]any{"error": err.Error()})
		}
		return nil, false
	}

	if resp.SessionID != "" {
		d.session.SetChatSessionID(resp.SessionID)
	}

	replies := make([]model.ChatMessage, 0, len(resp.Responses))
	for _, fragment := range resp.Responses {
		if fragment.Text == "" {
			continue
		}
		msg := model.NewBotMessage(fragment.Text)
		d.persist(username, msg)
		replies = append(replies, msg)
	}
	if len(replies) == 0 {
		// An empty success still needs an answer; availability is fine,
		// the local responder just covers this one message.
		d.log.Warn("assistant returned no responses", nil)
		return nil, false
	}
	return replies, true
}

// pause applies the artificial local-reply latency, cut short if the
// context ends.
func (d *Dispatcher) pause(ctx context.Context) {
	if d.localDelay <= 0 {
		return
	}
	t := time.NewTimer(d.localDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (d *Dispatcher) persist(username string, msg model.ChatMessage) {
	if username == "" {
		return
	}
	if err := d.history.Append(username, msg); err != nil {
		d.log.Warn("failed to persist chat message", map[string]any{"error": err.Error()})
	}
}

// History returns the persisted transcript for the current user.
func (d *Dispatcher) History() ([]model.ChatMessage, error) {
	username := d.session.Username()
	if username == "" {
		return nil, nil
	}
	return d.history.Load(username)
}
