// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the plain-terminal REPL front end for smartchat,
// used when the full-screen TUI is unwanted or the terminal cannot host
// one.
//
// The REPL drives the same login, refresh, and chat lifecycle as the TUI
// over liner prompts, renders assistant markdown through glamour at the
// terminal's detected color profile, and exposes slash commands (/help,
// /status, /logout, /quit).
package cli
