// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/smartchat-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// loginResultMsg carries the result of a login attempt.
type loginResultMsg struct {
	token string
	user  model.User
	err   error
}

// probeResultMsg carries the result of an assistant availability probe.
type probeResultMsg struct {
	up bool
}

// accountsMsg carries the dashboard's account fetch result.
type accountsMsg struct {
	accounts []model.Account
	err      error
}

// transactionsMsg carries the dashboard's recent-activity fetch result.
type transactionsMsg struct {
	txs []model.Transaction
	err error
}

// chatRepliesMsg carries the bot replies to a sent message.
type chatRepliesMsg struct {
	replies []model.ChatMessage
	err     error
}

// historyMsg carries the persisted transcript loaded on chat entry.
type historyMsg struct {
	messages []model.ChatMessage
}

// SessionEndedMsg is sent from outside the program when the session ends,
// typically because a background token refresh failed.
type SessionEndedMsg struct{}

// toastExpiredMsg clears a transient notice.
type toastExpiredMsg struct {
	id int
}

// =============================================================================
// COMMANDS
// =============================================================================

const requestTimeout = 30 * time.Second

func (a *App) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := a.deps.API.Login(ctx, username, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{token: resp.Token, user: resp.User}
	}
}

func (a *App) probeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return probeResultMsg{up: a.deps.Dispatcher.Probe(ctx)}
	}
}

func (a *App) accountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		accounts, err := a.deps.API.Accounts(ctx)
		return accountsMsg{accounts: accounts, err: err}
	}
}

func (a *App) transactionsCmd(limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		txs, err := a.deps.API.Transactions(ctx, limit)
		return transactionsMsg{txs: txs, err: err}
	}
}

func (a *App) sendChatCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		replies, err := a.deps.Dispatcher.Send(ctx, text)
		return chatRepliesMsg{replies: replies, err: err}
	}
}

func (a *App) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		messages, err := a.deps.Dispatcher.History()
		if err != nil {
			messages = nil
		}
		return historyMsg{messages: messages}
	}
}

func expireToastCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
