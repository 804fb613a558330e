// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/util"
)

// localKeywords are the intents answered from account data without ever
// contacting the remote assistant.
var localKeywords = []string{"balance", "account", "transaction"}

// IsLocalCommand reports whether the message is handled locally regardless
// of assistant availability. Matching is case-insensitive and substring
// based.
func IsLocalCommand(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range localKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// transactionListLimit caps how many recent transactions a local reply
// shows, and transactionDescWidth keeps their descriptions inside the
// fixed-width column.
const (
	transactionListLimit = 5
	transactionDescWidth = 24
)

// =============================================================================
// LOCAL RESPONDER
// =============================================================================

// respondLocally produces the reply text for a locally handled message.
// Keyword checks run in a fixed order so a message matching several intents
// gets a deterministic answer.
func (d *Dispatcher) respondLocally(ctx context.Context, message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "balance"):
		return d.balanceReply(ctx)
	case strings.Contains(lower, "transaction"):
		return d.transactionsReply(ctx)
	case strings.Contains(lower, "account"):
		return d.accountsReply(ctx)
	case strings.Contains(lower, "budget"), strings.Contains(lower, "advice"), strings.Contains(lower, "tip"):
		return budgetTip()
	case strings.Contains(lower, "help"):
		return helpReply()
	}

	if d.session.AssistantAvailable() {
		return "I'm not sure how to help with that. Try asking about your balance, accounts, or recent transactions, or type 'help'."
	}
	return "The assistant is currently offline, so I can only answer questions about your balance, accounts, and transactions. Type 'help' to see what I can do."
}

func (d *Dispatcher) balanceReply(ctx context.Context) string {
	accounts, err := d.loadAccounts(ctx)
	if err != nil {
		return apologyReply
	}
	if len(accounts) == 0 {
		return "You don't have any accounts on file."
	}
	var b strings.Builder
	b.WriteString("Here are your current balances:\n")
	total := 0.0
	for _, a := range accounts {
		total += a.Balance
		fmt.Fprintf(&b, "  %s %s: %s\n", a.AccountType, a.MaskedNumber(), model.FormatAmount(a.Balance))
	}
	fmt.Fprintf(&b, "Total: %s", model.FormatAmount(total))
	return b.String()
}

func (d *Dispatcher) accountsReply(ctx context.Context) string {
	accounts, err := d.loadAccounts(ctx)
	if err != nil {
		return apologyReply
	}
	if len(accounts) == 0 {
		return "You don't have any accounts on file."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d account(s):\n", len(accounts))
	for _, a := range accounts {
		fmt.Fprintf(&b, "  %s ending in %s\n", a.AccountType, strings.TrimPrefix(a.MaskedNumber(), "****"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Dispatcher) transactionsReply(ctx context.Context) string {
	txs, err := d.api.Transactions(ctx, transactionListLimit)
	if err != nil {
		return apologyReply
	}
	if len(txs) == 0 {
		return "No recent transactions found."
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	var b strings.Builder
	b.WriteString("Your most recent transactions:\n")
	for _, tx := range txs {
		desc := util.TruncateRunes(tx.Description, transactionDescWidth)
		fmt.Fprintf(&b, "  %s  %-24s %s\n", tx.Date.Format("Jan 02"), desc, model.FormatAmount(tx.Signed()))
	}
	return strings.TrimRight(b.String(), "\n")
}

// apologyReply is shown when a local intent needs account data and the
// fetch fails.
const apologyReply = "Sorry, I couldn't retrieve your account information right now. Please try again in a moment."

// budgetTips are the canned answers for budgeting questions; one is
// picked at random.
var budgetTips = []string{
	"A simple starting point: put 50% of income toward needs, 30% toward wants, and 20% toward savings.",
	"Reviewing your recent transactions once a week is the fastest way to spot spending drift.",
	"Automating a transfer into savings right after payday makes the budget enforce itself.",
	"Before a large purchase, wait 48 hours. Most impulse buys don't survive the pause.",
}

func budgetTip() string {
	return budgetTips[rand.Intn(len(budgetTips))]
}

func helpReply() string {
	return strings.Join([]string{
		"I can help with:",
		"  - balance: show your account balances",
		"  - accounts: list your accounts",
		"  - transactions: show recent activity",
		"  - budget: a quick budgeting tip",
	}, "\n")
}

// loadAccounts returns the cached account list, fetching it on first use.
func (d *Dispatcher) loadAccounts(ctx context.Context) ([]model.Account, error) {
	if cached := d.session.Accounts(); len(cached) > 0 {
		return cached, nil
	}
	accounts, err := d.api.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	d.session.SetAccounts(accounts)
	return accounts, nil
}
