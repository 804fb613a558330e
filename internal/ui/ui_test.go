// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/smartchat-tui/internal/config"
	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/session"
	"github.com/jeranaias/smartchat-tui/internal/storage"
	"github.com/jeranaias/smartchat-tui/internal/util"
)

func newEmptySession(t *testing.T) *session.Store {
	t.Helper()
	st, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return session.NewStore(st, storage.NewHistoryStore(st), logging.NewRing(10))
}

func TestLoginValidateFormCollectsAllErrors(t *testing.T) {
	v := newLoginView(NewTheme())
	v.username.SetValue("")
	v.password.SetValue("ab")

	if v.validateForm() {
		t.Fatal("form with empty username and short password must not validate")
	}
	if got := v.fieldErrors["username"]; got != "This field is required" {
		t.Errorf("username error = %q", got)
	}
	if got := v.fieldErrors["password"]; got != "Must be at least 6 characters" {
		t.Errorf("password error = %q", got)
	}
}

func TestLoginValidateFormPasses(t *testing.T) {
	v := newLoginView(NewTheme())
	v.username.SetValue("alice")
	v.password.SetValue("secret1")

	if !v.validateForm() {
		t.Fatalf("expected valid form, errors = %v", v.fieldErrors)
	}
	if len(v.fieldErrors) != 0 {
		t.Errorf("fieldErrors = %v, want empty", v.fieldErrors)
	}
}

func TestLoginResetClearsState(t *testing.T) {
	v := newLoginView(NewTheme())
	v.username.SetValue("alice")
	v.password.SetValue("x")
	v.validateForm()
	v.formError = "boom"
	v.submitting = true

	v.reset()

	if v.username.Value() != "" || v.password.Value() != "" {
		t.Error("inputs not cleared")
	}
	if len(v.fieldErrors) != 0 || v.formError != "" || v.submitting {
		t.Error("transient state not cleared")
	}
}

func TestChatRenderMessageUserAndBot(t *testing.T) {
	v := newChatView(NewTheme())
	v.width = 80

	user := model.ChatMessage{Content: "hello", Sender: model.SenderUser, Time: "09:30"}
	out := v.renderMessage(user)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "09:30") {
		t.Errorf("user render missing content or stamp: %q", out)
	}

	bot := model.ChatMessage{Content: "hi there", Sender: model.SenderBot, Time: "09:31"}
	out = v.renderMessage(bot)
	if !strings.Contains(out, "hi there") {
		t.Errorf("bot render missing content: %q", out)
	}
}

func TestDashboardViewShowsAccountsAndTotal(t *testing.T) {
	v := newDashboardView(NewTheme())
	v.accounts = []model.Account{
		{AccountNumber: "1234567890", AccountType: model.AccountChecking, Balance: 1500.25},
		{AccountNumber: "0987654321", AccountType: model.AccountSavings, Balance: 500},
	}

	out := v.view(newEmptySession(t))
	if !strings.Contains(out, "****7890") {
		t.Error("account number not masked in view")
	}
	if !strings.Contains(out, "$2,000.25") {
		t.Errorf("total missing from view: %q", out)
	}
	if strings.Contains(out, "Recent activity") {
		t.Error("transactions section shown before 't' was pressed")
	}
}

func TestDashboardTransactionsSection(t *testing.T) {
	v := newDashboardView(NewTheme())
	v.txVisible = true
	v.txs = []model.Transaction{
		{Description: "Coffee", Amount: 4.50, Type: model.TransactionDebit, Date: time.Now()},
		{Description: "Payroll deposit", Amount: 1200, Type: model.TransactionCredit, Date: time.Now()},
	}

	out := v.view(newEmptySession(t))
	if !strings.Contains(out, "Recent activity") {
		t.Fatalf("transactions section missing: %q", out)
	}
	if !strings.Contains(out, "$-4.50") {
		t.Errorf("debit amount missing or unsigned: %q", out)
	}
	if !strings.Contains(out, "$1,200.00") {
		t.Errorf("credit amount missing: %q", out)
	}
}

func TestDashboardTransactionsTruncateLongDescriptions(t *testing.T) {
	long := strings.Repeat("subscription renewal ", 4)
	v := newDashboardView(NewTheme())
	v.txVisible = true
	v.txs = []model.Transaction{
		{Description: long, Amount: 9.99, Type: model.TransactionDebit, Date: time.Now()},
	}

	out := v.view(newEmptySession(t))
	if strings.Contains(out, long) {
		t.Errorf("long description not truncated: %q", out)
	}
	if !strings.Contains(out, util.TruncateRunes(long, 28)) {
		t.Errorf("truncated description missing: %q", out)
	}
}

func TestStatusLineShowsBackendWhenLoggedOut(t *testing.T) {
	cfg := config.Default()
	app := New(Deps{Config: cfg, Log: logging.NewRing(10), Session: newEmptySession(t)})

	line := app.statusLine()
	if !strings.Contains(line, cfg.BaseURL()) {
		t.Errorf("status line %q missing backend %q", line, cfg.BaseURL())
	}
}

func TestStatusLineTruncatesLongToast(t *testing.T) {
	cfg := config.Default()
	app := New(Deps{Config: cfg, Log: logging.NewRing(10), Session: newEmptySession(t)})
	app.width = 30
	app.toast = strings.Repeat("assistant offline notice ", 10)

	line := app.statusLine()
	if strings.Contains(line, app.toast) {
		t.Errorf("toast not truncated to the terminal width: %q", line)
	}
	if !strings.Contains(line, util.TruncateWidth(app.toast, app.width-4)) {
		t.Errorf("truncated toast missing from status line: %q", line)
	}
}
