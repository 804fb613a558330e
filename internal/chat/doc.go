// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat routes user messages between the remote assistant and the
// built-in local responder, persisting the transcript as it goes.
//
// The dispatcher persists the user's message before anything else, answers
// balance, account, and transaction questions locally without contacting
// the assistant, and falls back to the local responder whenever the remote
// side is unavailable or returns nothing usable. Every send produces
// exactly one set of replies.
//
// # Key Types
//
//   - Dispatcher: Send, Probe, and History over an injected Backend
//   - Backend: The remote surface the dispatcher needs (implemented by
//     api.Client)
//
// # Usage
//
//	d := chat.NewDispatcher(client, sess, history, ring, 0)
//	replies, err := d.Send(ctx, "what is my balance?")
package chat
