// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable local key-value store backing the
// smartchat client: the persisted session credential, the serialized user,
// and per-user chat transcripts.
//
// Each key is a single JSON file under the base directory (default
// ~/.smartchat). Writes are atomic (temp file + fsync + rename), so a
// crash never leaves a half-written value.
//
// # Key Types
//
//   - Store: JSON file-per-key store with Get, Set, Delete
//   - HistoryStore: Per-user chat transcripts layered on Store
//   - StoreError: Wraps failures with the key and operation involved
//
// # Usage
//
//	st, err := storage.NewStore()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = st.Set(storage.KeyToken, token)
package storage
