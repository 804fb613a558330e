// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/session"
	"github.com/jeranaias/smartchat-tui/internal/util"
)

// chatReservedLines is the vertical space kept for the input line, status
// bar, and title above and below the transcript viewport.
const chatReservedLines = 6

// =============================================================================
// CHAT VIEW
// =============================================================================

type chatView struct {
	theme *Theme

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	messages []model.ChatMessage
	waiting  bool

	renderer *glamour.TermRenderer

	width  int
	height int
}

func newChatView(theme *Theme) *chatView {
	input := textinput.New()
	input.Placeholder = "Ask about your balance, accounts, or anything else..."
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	return &chatView{
		theme:    theme,
		viewport: viewport.New(80, 20),
		input:    input,
		spin:     spin,
	}
}

func (v *chatView) resetInput() {
	v.input.SetValue("")
	v.waiting = false
}

func (v *chatView) resize(w, h int) {
	v.width = w
	v.height = h
	vh := h - chatReservedLines
	if vh < 3 {
		vh = 3
	}
	v.viewport.Width = w
	v.viewport.Height = vh
	v.input.Width = w - 4

	wrap := w - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		v.renderer = r
	}
	v.refresh()
}

func (a *App) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	v := a.chat

	switch msg := msg.(type) {
	case historyMsg:
		v.messages = msg.messages
		v.refresh()
		v.viewport.GotoBottom()
		return a, nil

	case chatRepliesMsg:
		v.waiting = false
		if msg.err != nil {
			return a, a.showToast("Message failed: "+msg.err.Error(), logging.LevelError)
		}
		v.messages = append(v.messages, msg.replies...)
		v.refresh()
		v.viewport.GotoBottom()
		return a, nil

	case spinner.TickMsg:
		if !v.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return a, a.navigate(PathDashboard)
		case "enter":
			text := strings.TrimSpace(v.input.Value())
			if text == "" || v.waiting {
				return a, nil
			}
			v.input.SetValue("")
			v.waiting = true
			v.messages = append(v.messages, model.NewUserMessage(text))
			v.refresh()
			v.viewport.GotoBottom()
			return a, tea.Batch(a.sendChatCmd(text), v.spin.Tick)
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return a, cmd
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return a, cmd
}

// refresh rebuilds the viewport content from the transcript.
func (v *chatView) refresh() {
	var b strings.Builder
	for _, msg := range v.messages {
		b.WriteString(v.renderMessage(msg))
		b.WriteString("\n")
	}
	v.viewport.SetContent(b.String())
}

func (v *chatView) renderMessage(msg model.ChatMessage) string {
	stamp := v.theme.Timestamp.Render(msg.Time)
	if msg.Sender == model.SenderUser {
		return stamp + " " + v.theme.UserBubble.Render("you") + "  " + msg.Content
	}

	body := msg.Content
	if v.renderer != nil {
		if rendered, err := v.renderer.Render(msg.Content); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	} else {
		wrap := v.width - 4
		if wrap < 20 {
			wrap = 20
		}
		body = util.WrapWidth(body, wrap)
	}
	return stamp + " " + v.theme.BotBubble.Render("bot") + "  " + body
}

func (v *chatView) view(sess *session.Store) string {
	var b strings.Builder
	b.WriteString(v.theme.Title.Render("Chat"))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	if v.waiting {
		b.WriteString(v.spin.View())
		b.WriteString(v.theme.Hint.Render(" thinking..."))
		b.WriteString("\n")
	}
	b.WriteString("> ")
	b.WriteString(v.input.View())
	return b.String()
}
