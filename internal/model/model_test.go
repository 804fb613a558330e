// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name preferred", User{Username: "alice", FullName: "Alice Smith"}, "Alice Smith"},
		{"falls back to username", User{Username: "alice"}, "alice"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.DisplayName(); got != tc.want {
				t.Errorf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAccount_MaskedNumber(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"1234567890", "****7890"},
		{"1234", "1234"},
		{"12", "12"},
	}
	for _, tc := range tests {
		a := Account{AccountNumber: tc.number}
		if got := a.MaskedNumber(); got != tc.want {
			t.Errorf("MaskedNumber(%q) = %q, want %q", tc.number, got, tc.want)
		}
	}
}

func TestTransaction_Signed(t *testing.T) {
	debit := Transaction{Amount: 25, Type: TransactionDebit, Date: time.Now()}
	credit := Transaction{Amount: 100, Type: TransactionCredit, Date: time.Now()}

	if got := debit.Signed(); got != -25 {
		t.Errorf("debit.Signed() = %v, want -25", got)
	}
	if got := credit.Signed(); got != 100 {
		t.Errorf("credit.Signed() = %v, want 100", got)
	}
}

func TestNewChatMessage(t *testing.T) {
	m := NewUserMessage("hello")
	if m.ID == "" {
		t.Error("message ID should be generated")
	}
	if m.Sender != SenderUser {
		t.Errorf("Sender = %q, want %q", m.Sender, SenderUser)
	}
	if m.Content != "hello" {
		t.Errorf("Content = %q", m.Content)
	}
	if m.Time == "" {
		t.Error("Time should be stamped")
	}

	b := NewBotMessage("hi")
	if b.Sender != SenderBot {
		t.Errorf("Sender = %q, want %q", b.Sender, SenderBot)
	}
	if b.ID == m.ID {
		t.Error("message IDs should be unique")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234.5, "$1,234.50"},
		{0, "$0.00"},
		{999999.999, "$1,000,000.00"},
	}
	for _, tc := range tests {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
