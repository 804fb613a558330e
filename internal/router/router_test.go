// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"testing"

	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/session"
	"github.com/jeranaias/smartchat-tui/internal/storage"
)

func newRouter() (*Router, *logging.Ring) {
	ring := logging.NewRing(50)
	return New(ring), ring
}

func countLevel(ring *logging.Ring, level logging.Level) int {
	n := 0
	for _, e := range ring.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

func TestNavigateInvokesHandler(t *testing.T) {
	r, _ := newRouter()
	var shown []string
	r.Register("/login", func(s State) { shown = append(shown, s.Path) })

	r.Navigate("/login", nil)

	if len(shown) != 1 || shown[0] != "/login" {
		t.Fatalf("handler calls = %v, want [/login]", shown)
	}
	if got := r.Current(); got != "/login" {
		t.Fatalf("Current() = %q, want /login", got)
	}
}

func TestNavigateEmptyPathMeansDefault(t *testing.T) {
	r, _ := newRouter()
	var shown string
	r.Register("/", func(s State) { shown = s.Path })

	r.Navigate("", nil)

	if shown != "/" {
		t.Fatalf("handler saw %q, want /", shown)
	}
}

func TestNavigatePassesParamsAndDefaultsNilToEmpty(t *testing.T) {
	r, _ := newRouter()
	var got State
	r.Register("/x", func(s State) { got = s })

	r.Navigate("/x", map[string]any{"tab": "savings"})
	if got.Params["tab"] != "savings" {
		t.Fatalf("params = %v, want tab=savings", got.Params)
	}

	r.Navigate("/x", nil)
	if got.Params == nil {
		t.Fatal("nil params must arrive as an empty map")
	}
}

func TestRegisterOverwrites(t *testing.T) {
	r, _ := newRouter()
	var which string
	r.Register("/x", func(State) { which = "first" })
	r.Register("/x", func(State) { which = "second" })

	r.Navigate("/x", nil)

	if which != "second" {
		t.Fatalf("handler = %q, want second", which)
	}
}

func TestUnknownRouteLogsOnceAndRedirectsOnce(t *testing.T) {
	r, ring := newRouter()
	home := 0
	r.Register("/", func(State) { home++ })

	r.Navigate("/nope", nil)

	if home != 1 {
		t.Fatalf("home handler ran %d times, want 1", home)
	}
	if errs := countLevel(ring, logging.LevelError); errs != 1 {
		t.Fatalf("error entries = %d, want 1", errs)
	}
	if got := r.Current(); got != "/" {
		t.Fatalf("Current() = %q, want /", got)
	}
}

func TestUnknownRouteWithUnknownDefaultDoesNotLoop(t *testing.T) {
	r, ring := newRouter()
	// No routes registered at all. The redirect target is itself unknown;
	// the router must not recurse past that.
	r.Navigate("/nope", nil)

	if errs := countLevel(ring, logging.LevelError); errs != 2 {
		t.Fatalf("error entries = %d, want 2", errs)
	}
	if got := r.Current(); got != "" {
		t.Fatalf("Current() = %q, want empty", got)
	}
}

func TestMiddlewareBlocksAndLeavesViewUntouched(t *testing.T) {
	r, ring := newRouter()
	cleared := 0
	handled := 0
	r.OnClearView(func() { cleared++ })
	r.Register("/open", func(State) { handled++ })
	r.Register("/locked", func(State) { handled++ }, func(State) bool { return false })

	r.Navigate("/open", nil)
	r.Navigate("/locked", nil)

	if handled != 1 {
		t.Fatalf("handled = %d, want 1", handled)
	}
	if cleared != 1 {
		t.Fatalf("cleared = %d, want 1", cleared)
	}
	if got := r.Current(); got != "/open" {
		t.Fatalf("Current() = %q, want /open", got)
	}
	if countLevel(ring, logging.LevelWarn) == 0 {
		t.Fatal("expected a warning for blocked navigation")
	}
}

func TestMiddlewareOrderGlobalThenRoute(t *testing.T) {
	r, _ := newRouter()
	var order []string
	r.Use(func(State) bool { order = append(order, "g1"); return true })
	r.Use(func(State) bool { order = append(order, "g2"); return true })
	r.Register("/x", func(State) { order = append(order, "h") },
		func(State) bool { order = append(order, "r1"); return true })

	r.Navigate("/x", nil)

	want := []string{"g1", "g2", "r1", "h"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestFirstFailingMiddlewareHaltsChain(t *testing.T) {
	r, _ := newRouter()
	var order []string
	r.Use(func(State) bool { order = append(order, "g1"); return false })
	r.Use(func(State) bool { order = append(order, "g2"); return true })
	r.Register("/x", func(State) { order = append(order, "h") })

	r.Navigate("/x", nil)

	if len(order) != 1 || order[0] != "g1" {
		t.Fatalf("order = %v, want [g1]", order)
	}
}

func TestRenavigationRerunsPipeline(t *testing.T) {
	r, _ := newRouter()
	handled := 0
	mw := 0
	r.Register("/x", func(State) { handled++ }, func(State) bool { mw++; return true })

	r.Navigate("/x", nil)
	r.Navigate("/x", nil)

	if handled != 2 || mw != 2 {
		t.Fatalf("handled=%d mw=%d, want 2 and 2", handled, mw)
	}
}

func TestRequireAuth(t *testing.T) {
	st, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sess := session.NewStore(st, storage.NewHistoryStore(st), logging.NewRing(10))

	r, _ := newRouter()
	handled := 0
	r.Register("/dashboard", func(State) { handled++ }, RequireAuth(sess))

	r.Navigate("/dashboard", nil)
	if handled != 0 {
		t.Fatal("navigation should be blocked while logged out")
	}

	if err := sess.LoginSuccess("tok", model.User{Username: "alice"}); err != nil {
		t.Fatal(err)
	}
	r.Navigate("/dashboard", nil)
	if handled != 1 {
		t.Fatal("navigation should pass once logged in")
	}
}
