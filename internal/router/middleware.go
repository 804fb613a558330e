// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/jeranaias/smartchat-tui/internal/session"
)

// RequireAuth blocks navigation unless a user is logged in.
func RequireAuth(s *session.Store) Middleware {
	return func(State) bool {
		return s.Authenticated()
	}
}
