// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the single chokepoint for calls to the smartchat backend.
//
// Every outbound request goes through Client.call, which resolves the
// endpoint against the configured base URL, attaches the JSON content type
// and the bearer token when one is present, normalizes non-success HTTP
// statuses into *StatusError, and logs every failure with its endpoint
// before propagating it. The gateway never swallows errors; degradation
// decisions belong to the callers.
//
// # Key Types
//
//   - Client: The HTTP gateway (Login, Refresh, SendChat, AssistantStatus,
//     Accounts, Transactions)
//   - StatusError: A non-success HTTP status as a matchable error
//   - TokenSource: Callback the client uses to read the current token
//
// # Usage
//
//	client := api.NewClient(cfg.BaseURL(), ring).WithTokenSource(sess.Token)
//
//	resp, err := client.Login(ctx, username, password)
//	if api.IsStatus(err, 401) {
//	    // bad credentials
//	}
package api
