// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestColorProfileHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if got := ColorProfile(); got != termenv.Ascii {
		t.Errorf("ColorProfile() = %v with NO_COLOR set, want Ascii", got)
	}
}

func TestColorProfileDefault(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if got := ColorProfile(); got != termenv.ColorProfile() {
		t.Errorf("ColorProfile() = %v, want the detected profile %v", got, termenv.ColorProfile())
	}
}
