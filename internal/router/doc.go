// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router maps view paths to handlers and runs middleware in front
// of every navigation. It is UI-agnostic: the front ends register a
// clear-view hook and handlers that render whatever "showing a view"
// means for them.
//
// # Key Types
//
//   - Router: Registration and navigation with an unknown-path redirect
//     to "/"
//   - State: The path and parameters a handler receives
//   - Middleware: A guard that can block a navigation; a blocked
//     navigation leaves the current view untouched
//
// # Usage
//
//	nav := router.New(ring)
//	nav.Register("/dashboard", showDashboard, router.RequireAuth(sess))
//	nav.Navigate("/dashboard", nil)
package router
