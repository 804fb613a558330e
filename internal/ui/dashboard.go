// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/session"
	"github.com/jeranaias/smartchat-tui/internal/util"
)

// =============================================================================
// DASHBOARD VIEW
// =============================================================================

// recentActivityLimit caps the transactions shown under the accounts table.
const recentActivityLimit = 5

type dashboardView struct {
	theme *Theme

	accounts []model.Account
	loading  bool
	loadErr  string

	txs       []model.Transaction
	txVisible bool
	txLoading bool
	txErr     string

	width int
}

func newDashboardView(theme *Theme) *dashboardView {
	return &dashboardView{theme: theme}
}

func (v *dashboardView) resize(w, _ int) {
	v.width = w
}

func (a *App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	v := a.dash

	switch msg := msg.(type) {
	case accountsMsg:
		v.loading = false
		if msg.err != nil {
			v.loadErr = "Could not load accounts: " + msg.err.Error()
			return a, nil
		}
		v.loadErr = ""
		v.accounts = msg.accounts
		a.deps.Session.SetAccounts(msg.accounts)
		return a, nil

	case transactionsMsg:
		v.txLoading = false
		if msg.err != nil {
			v.txErr = "Could not load transactions: " + msg.err.Error()
			return a, nil
		}
		v.txErr = ""
		v.txs = msg.txs
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			return a, a.navigate(PathChat)
		case "t":
			if v.txVisible {
				v.txVisible = false
				return a, nil
			}
			v.txVisible = true
			v.txLoading = true
			return a, a.transactionsCmd(recentActivityLimit)
		case "r":
			v.loading = true
			cmds := []tea.Cmd{a.accountsCmd(), a.probeCmd()}
			if v.txVisible {
				v.txLoading = true
				cmds = append(cmds, a.transactionsCmd(recentActivityLimit))
			}
			return a, tea.Batch(cmds...)
		case "l":
			return a, a.logout()
		}
	}
	return a, nil
}

func (v *dashboardView) view(sess *session.Store) string {
	var b strings.Builder
	name := ""
	if u := sess.User(); u != nil {
		name = u.DisplayName()
	}
	b.WriteString(v.theme.Title.Render("Accounts"))
	if name != "" {
		b.WriteString("  ")
		b.WriteString(v.theme.Subtitle.Render(name))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.theme.Hint.Render("Loading accounts..."))
	case v.loadErr != "":
		b.WriteString(v.theme.FieldError.Render(v.loadErr))
	case len(v.accounts) == 0:
		b.WriteString(v.theme.Hint.Render("No accounts on file."))
	default:
		b.WriteString(v.theme.TableHeader.Render(fmt.Sprintf("%-12s %-12s %14s", "TYPE", "NUMBER", "BALANCE")))
		b.WriteString("\n")
		total := 0.0
		for _, acct := range v.accounts {
			total += acct.Balance
			row := fmt.Sprintf("%-12s %-12s %14s",
				acct.AccountType, acct.MaskedNumber(), model.FormatAmount(acct.Balance))
			b.WriteString(v.theme.TableRow.Render(row))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.theme.Balance.Render("Total: " + model.FormatAmount(total)))
	}

	if v.txVisible {
		b.WriteString("\n\n")
		b.WriteString(v.transactionsSection())
	}
	return b.String()
}

// transactionsSection renders the recent-activity list, debits in red and
// credits in green.
func (v *dashboardView) transactionsSection() string {
	var b strings.Builder
	b.WriteString(v.theme.Title.Render("Recent activity"))
	b.WriteString("\n")

	switch {
	case v.txLoading:
		b.WriteString(v.theme.Hint.Render("Loading transactions..."))
	case v.txErr != "":
		b.WriteString(v.theme.FieldError.Render(v.txErr))
	case len(v.txs) == 0:
		b.WriteString(v.theme.Hint.Render("No recent transactions."))
	default:
		for _, tx := range v.txs {
			amountStyle := v.theme.Credit
			if tx.Type == model.TransactionDebit {
				amountStyle = v.theme.Debit
			}
			desc := util.TruncateRunes(tx.Description, 28)
			row := fmt.Sprintf("%s  %-28s %s",
				v.theme.Timestamp.Render(tx.Date.Format("Jan 02")),
				desc,
				amountStyle.Render(model.FormatAmount(tx.Signed())))
			b.WriteString(v.theme.TableRow.Render(row))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
