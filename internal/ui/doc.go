// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea front end for smartchat: a login
// view, an accounts dashboard with recent activity, and the chat
// transcript.
//
// # Key Types
//
//   - App: The root tea.Model; owns the router and delegates to the
//     active view
//   - Deps: The dependency set constructed in main and passed down
//   - Theme: Lipgloss styles for every surface, tuned to the terminal's
//     color capability
//   - SessionEndedMsg: Sent into the program when a background refresh
//     failure ends the session
//
// # Usage
//
//	app := ui.New(ui.Deps{Config: cfg, Log: ring, Session: sess, API: client,
//	    Dispatcher: d, Refresher: refresher})
//	program := tea.NewProgram(app, tea.WithAltScreen())
package ui
