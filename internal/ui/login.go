// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/smartchat-tui/internal/validate"
)

// minPasswordLength is the shortest password the form accepts.
const minPasswordLength = 6

// =============================================================================
// LOGIN VIEW
// =============================================================================

type loginView struct {
	theme *Theme

	username textinput.Model
	password textinput.Model
	focused  int

	fieldErrors map[string]string
	formError   string
	submitting  bool

	width int
}

func newLoginView(theme *Theme) *loginView {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return &loginView{
		theme:       theme,
		username:    username,
		password:    password,
		fieldErrors: map[string]string{},
	}
}

func (v *loginView) reset() {
	v.username.SetValue("")
	v.password.SetValue("")
	v.fieldErrors = map[string]string{}
	v.formError = ""
	v.submitting = false
	v.focused = 0
	v.username.Focus()
	v.password.Blur()
}

func (v *loginView) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (v *loginView) resize(w, _ int) {
	v.width = w
}

// validateForm checks every field and records all failures at once.
func (v *loginView) validateForm() bool {
	result := validate.ValidateForm(
		map[string]string{
			"username": v.username.Value(),
			"password": v.password.Value(),
		},
		map[string][]validate.Rule{
			"username": {validate.Required},
			"password": {validate.Required, validate.MinLength(minPasswordLength)},
		},
	)
	v.fieldErrors = result.Errors
	return result.IsValid
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	v := a.login

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			if v.focused == 0 {
				v.focused = 1
				v.username.Blur()
				v.password.Focus()
			} else {
				v.focused = 0
				v.password.Blur()
				v.username.Focus()
			}
			return a, textinput.Blink
		case "enter":
			if v.submitting {
				return a, nil
			}
			v.formError = ""
			if !v.validateForm() {
				return a, nil
			}
			v.submitting = true
			return a, a.loginCmd(strings.TrimSpace(v.username.Value()), v.password.Value())
		}
	}

	var cmd tea.Cmd
	if v.focused == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return a, cmd
}

func (v *loginView) view() string {
	var b strings.Builder
	b.WriteString(v.theme.Title.Render("SmartChat"))
	b.WriteString("\n")
	b.WriteString(v.theme.Subtitle.Render("Sign in to your account"))
	b.WriteString("\n\n")

	b.WriteString(v.theme.Label.Render("Username"))
	b.WriteString("\n")
	b.WriteString(v.username.View())
	b.WriteString("\n")
	if msg, ok := v.fieldErrors["username"]; ok {
		b.WriteString(v.theme.FieldError.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.theme.Label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n")
	if msg, ok := v.fieldErrors["password"]; ok {
		b.WriteString(v.theme.FieldError.Render(msg))
		b.WriteString("\n")
	}

	if v.submitting {
		b.WriteString("\n")
		b.WriteString(v.theme.Hint.Render("Signing in..."))
	}
	if v.formError != "" {
		b.WriteString("\n")
		b.WriteString(v.theme.FieldError.Render(v.formError))
	}
	return b.String()
}
