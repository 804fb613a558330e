// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// =============================================================================
// USERS AND ACCOUNTS
// =============================================================================

// User identifies an authenticated user. Username is the unique key.
type User struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

// DisplayName returns the full name when present, otherwise the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// AccountType is the product type of a bank account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
)

// Account is a bank account owned by the current user.
type Account struct {
	AccountNumber string      `json:"account_number"`
	AccountType   AccountType `json:"account_type"`
	Balance       float64     `json:"balance"`
}

// MaskedNumber returns the account number with all but the last four digits
// hidden.
func (a Account) MaskedNumber() string {
	runes := []rune(a.AccountNumber)
	if len(runes) <= 4 {
		return a.AccountNumber
	}
	return "****" + string(runes[len(runes)-4:])
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// TransactionType distinguishes money leaving from money entering.
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// Transaction is a single ledger entry on a user account.
type Transaction struct {
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
}

// Signed returns the amount with a sign applied: negative for debits,
// positive for credits.
func (t Transaction) Signed() float64 {
	if t.Type == TransactionDebit {
		return -t.Amount
	}
	return t.Amount
}

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry of a user's chat transcript. Time is stored as a
// preformatted clock string, matching what the transcript displays.
type ChatMessage struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Sender  Sender `json:"sender"`
	Time    string `json:"time"`
}

// messageClock is the display format for message timestamps.
const messageClock = "15:04"

// NewChatMessage creates a message stamped with the current wall clock.
func NewChatMessage(sender Sender, content string) ChatMessage {
	return ChatMessage{
		ID:      uuid.NewString(),
		Content: content,
		Sender:  sender,
		Time:    time.Now().Format(messageClock),
	}
}

// NewUserMessage creates a user-sent message.
func NewUserMessage(content string) ChatMessage {
	return NewChatMessage(SenderUser, content)
}

// NewBotMessage creates a bot-sent message.
func NewBotMessage(content string) ChatMessage {
	return NewChatMessage(SenderBot, content)
}

// =============================================================================
// AMOUNT FORMATTING
// =============================================================================

// amountPrinter renders dollar amounts with locale-aware digit grouping.
var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a dollar amount for display, e.g. 1234.5 ->
// "$1,234.50".
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("$%.2f", v)
}
