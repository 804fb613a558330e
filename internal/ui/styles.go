// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	ColorProfile termenv.Profile

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	App       lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	StatusBar lipgloss.Style

	// ==========================================================================
	// FORMS
	// ==========================================================================

	Label      lipgloss.Style
	FieldError lipgloss.Style
	Hint       lipgloss.Style

	// ==========================================================================
	// CHAT
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	Timestamp  lipgloss.Style
	Spinner    lipgloss.Style

	// ==========================================================================
	// DASHBOARD
	// ==========================================================================

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	Balance     lipgloss.Style
	Debit       lipgloss.Style
	Credit      lipgloss.Style

	// ==========================================================================
	// NOTICES
	// ==========================================================================

	ToastInfo    lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
	OnlineBadge  lipgloss.Style
	OfflineBadge lipgloss.Style
}

// NewTheme builds the default theme for the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	accent := lipgloss.Color("39")   // blue
	muted := lipgloss.Color("241")   // gray
	danger := lipgloss.Color("196")  // red
	warning := lipgloss.Color("214") // orange
	good := lipgloss.Color("42")     // green

	return &Theme{
		ColorProfile: profile,

		App:       lipgloss.NewStyle().Padding(0, 1),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle:  lipgloss.NewStyle().Foreground(muted),
		StatusBar: lipgloss.NewStyle().Foreground(muted).Padding(0, 1),

		Label:      lipgloss.NewStyle().Bold(true),
		FieldError: lipgloss.NewStyle().Foreground(danger),
		Hint:       lipgloss.NewStyle().Foreground(muted).Italic(true),

		UserBubble: lipgloss.NewStyle().Foreground(accent).Bold(true),
		BotBubble:  lipgloss.NewStyle(),
		Timestamp:  lipgloss.NewStyle().Foreground(muted),
		Spinner:    lipgloss.NewStyle().Foreground(accent),

		TableHeader: lipgloss.NewStyle().Bold(true).Underline(true),
		TableRow:    lipgloss.NewStyle(),
		Balance:     lipgloss.NewStyle().Bold(true).Foreground(good),
		Debit:       lipgloss.NewStyle().Foreground(danger),
		Credit:      lipgloss.NewStyle().Foreground(good),

		ToastInfo:    lipgloss.NewStyle().Foreground(accent),
		ToastWarning: lipgloss.NewStyle().Foreground(warning),
		ToastError:   lipgloss.NewStyle().Foreground(danger).Bold(true),
		OnlineBadge:  lipgloss.NewStyle().Foreground(good),
		OfflineBadge: lipgloss.NewStyle().Foreground(warning),
	}
}
