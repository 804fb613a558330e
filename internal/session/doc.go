// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the authenticated-user state for the smartchat
// client: the token, the user identity, assistant availability, and the
// persistence that lets a restart resume a prior login.
//
// # Key Types
//
//   - Store: Thread-safe session state with persistence and logout
//     observers
//   - RefreshScheduler: Background token refresh on a fixed interval; a
//     failed refresh logs the user out rather than retrying
//
// # Usage
//
//	sess := session.NewStore(st, history, ring)
//	if sess.Load() {
//	    // a persisted login was resumed
//	}
//	refresher := session.NewRefreshScheduler(sess, client, ring, 15*time.Minute)
//	refresher.Start()
package session
