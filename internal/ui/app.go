// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/smartchat-tui/internal/api"
	"github.com/jeranaias/smartchat-tui/internal/chat"
	"github.com/jeranaias/smartchat-tui/internal/config"
	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/router"
	"github.com/jeranaias/smartchat-tui/internal/session"
	"github.com/jeranaias/smartchat-tui/internal/util"
)

// View paths.
const (
	PathLogin     = "/"
	PathDashboard = "/dashboard"
	PathChat      = "/chat"
)

// Deps is the dependency set the TUI runs on. Everything is constructed in
// main and passed down; the UI owns no domain state of its own.
type Deps struct {
	Config     *config.Config
	Log        *logging.Ring
	Session    *session.Store
	API        *api.Client
	Dispatcher *chat.Dispatcher
	Refresher  *session.RefreshScheduler
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model. It owns the router and delegates
// rendering and input to whichever view the router last navigated to.
type App struct {
	deps  Deps
	theme *Theme
	nav   *router.Router

	width  int
	height int

	active string
	login  *loginView
	dash   *dashboardView
	chat   *chatView

	toast     string
	toastKind logging.Level
	toastID   int

	// manualLogout suppresses the session-expired notice when the logout
	// was the user's own doing.
	manualLogout bool

	quitting bool
}

// New constructs the TUI and registers its routes.
func New(deps Deps) *App {
	theme := NewTheme()
	a := &App{
		deps:  deps,
		theme: theme,
	}
	a.login = newLoginView(theme)
	a.dash = newDashboardView(theme)
	a.chat = newChatView(theme)

	nav := router.New(deps.Log)
	nav.OnClearView(a.clearView)
	nav.Register(PathLogin, func(router.State) { a.active = PathLogin })
	nav.Register(PathDashboard, func(router.State) { a.active = PathDashboard },
		router.RequireAuth(deps.Session))
	nav.Register(PathChat, func(router.State) { a.active = PathChat },
		router.RequireAuth(deps.Session))
	a.nav = nav
	return a
}

// clearView resets transient view state before the next view renders.
func (a *App) clearView() {
	a.login.reset()
	a.chat.resetInput()
}

// navigate runs the router and returns the entry command for the view that
// ended up active.
func (a *App) navigate(path string) tea.Cmd {
	before := a.active
	a.nav.Navigate(path, nil)
	if a.active == before && a.active != path {
		return nil // blocked
	}
	switch a.active {
	case PathDashboard:
		a.dash.loading = true
		return tea.Batch(a.accountsCmd(), a.probeCmd())
	case PathChat:
		return tea.Batch(a.loadHistoryCmd(), a.probeCmd(), a.chat.spin.Tick)
	case PathLogin:
		return a.login.focusCmd()
	}
	return nil
}

// Init implements tea.Model. A persisted session skips the login view.
func (a *App) Init() tea.Cmd {
	if a.deps.Session.Authenticated() {
		a.deps.Refresher.Start()
		return a.navigate(PathDashboard)
	}
	return a.navigate(PathLogin)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.resize(msg.Width, msg.Height)
		a.dash.resize(msg.Width, msg.Height)
		a.chat.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		}

	case SessionEndedMsg:
		if a.manualLogout {
			a.manualLogout = false
			return a, nil
		}
		return a, tea.Batch(
			a.showToast("Session expired, please log in again", logging.LevelWarn),
			a.navigate(PathLogin),
		)

	case loginResultMsg:
		return a.handleLoginResult(msg)

	case probeResultMsg:
		if !msg.up {
			return a, a.showToast("Assistant offline: only balance, account, and transaction questions are answered", logging.LevelWarn)
		}
		return a, nil

	case toastExpiredMsg:
		if msg.id == a.toastID {
			a.toast = ""
		}
		return a, nil
	}

	// Everything else belongs to the active view.
	switch a.active {
	case PathLogin:
		return a.updateLogin(msg)
	case PathDashboard:
		return a.updateDashboard(msg)
	case PathChat:
		return a.updateChat(msg)
	}
	return a, nil
}

func (a *App) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	a.login.submitting = false
	if msg.err != nil {
		if api.IsStatus(msg.err, 401) {
			a.login.formError = "Invalid username or password"
		} else {
			a.login.formError = "Login failed: " + msg.err.Error()
		}
		return a, nil
	}
	if err := a.deps.Session.LoginSuccess(msg.token, msg.user); err != nil {
		a.deps.Log.Warn("failed to persist session", map[string]any{"error": err.Error()})
	}
	a.deps.Refresher.Start()
	return a, tea.Batch(
		a.showToast("Welcome, "+msg.user.DisplayName(), logging.LevelSuccess),
		a.navigate(PathDashboard),
	)
}

// logout ends the session from the UI side: the scheduler stops first so
// no refresh races the teardown.
func (a *App) logout() tea.Cmd {
	a.manualLogout = true
	a.deps.Refresher.Stop()
	a.deps.Session.Logout()
	return tea.Batch(
		a.showToast("Logged out", logging.LevelInfo),
		a.navigate(PathLogin),
	)
}

// toastLifetime is how long a notice stays on the status line.
const toastLifetime = 5 * time.Second

func (a *App) showToast(text string, kind logging.Level) tea.Cmd {
	a.toast = text
	a.toastKind = kind
	a.toastID++
	return expireToastCmd(a.toastID, toastLifetime)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	var body string
	switch a.active {
	case PathDashboard:
		body = a.dash.view(a.deps.Session)
	case PathChat:
		body = a.chat.view(a.deps.Session)
	default:
		body = a.login.view()
	}
	return a.theme.App.Render(body + "\n" + a.statusLine())
}

func (a *App) statusLine() string {
	var parts []string
	if a.toast != "" {
		style := a.theme.ToastInfo
		switch a.toastKind {
		case logging.LevelWarn:
			style = a.theme.ToastWarning
		case logging.LevelError:
			style = a.theme.ToastError
		case logging.LevelSuccess:
			style = a.theme.OnlineBadge
		}
		text := a.toast
		if a.width > 0 {
			text = util.TruncateWidth(text, a.width-4)
		}
		parts = append(parts, style.Render(text))
	}
	if a.deps.Session.Authenticated() {
		badge := a.theme.OfflineBadge.Render("assistant offline")
		if a.deps.Session.AssistantAvailable() {
			badge = a.theme.OnlineBadge.Render("assistant online")
		}
		parts = append(parts, badge)
	} else {
		parts = append(parts, a.theme.Subtitle.Render(a.deps.Config.BaseURL()))
	}
	parts = append(parts, a.theme.Hint.Render(a.keyHints()))
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += "  "
		}
		line += p
	}
	return a.theme.StatusBar.Render(line)
}

func (a *App) keyHints() string {
	switch a.active {
	case PathDashboard:
		return "c: chat  t: transactions  r: refresh  l: logout  ctrl+c: quit"
	case PathChat:
		return "enter: send  esc: dashboard  ctrl+c: quit"
	default:
		return "tab: next field  enter: sign in  ctrl+c: quit"
	}
}
