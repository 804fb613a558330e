// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the smartchat
// client: users, accounts, transactions, and chat messages.
//
// # Key Types
//
//   - User: The authenticated customer (username, display name, email)
//   - Account: A bank account with masked-number rendering
//   - Transaction: A single ledger entry with a signed amount
//   - ChatMessage: One line of the transcript with sender and timestamp
//   - Sender: Message origin enumeration (user, bot)
//
// # Usage
//
// Build transcript entries:
//
//	msg := model.NewUserMessage("what is my balance?")
//	reply := model.NewBotMessage("Here are your balances:")
//
// Render money consistently:
//
//	fmt.Println(model.FormatAmount(tx.Signed()))
package model
