// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"sync"

	"github.com/jeranaias/smartchat-tui/internal/logging"
)

// DefaultPath is the path navigated to when no path is given and the
// fallback destination for unknown paths.
const DefaultPath = "/"

// State is what a navigation carries to middleware and handlers.
type State struct {
	Path   string
	Params map[string]any
}

// Handler renders a view for a navigation.
type Handler func(State)

// Middleware runs before a handler. Returning false blocks the navigation;
// the current view is left untouched.
type Middleware func(State) bool

// =============================================================================
// ROUTER
// =============================================================================

// Router dispatches navigations to registered handlers.
type Router struct {
	mu         sync.Mutex
	routes     map[string]route
	global     []Middleware
	clearView  func()
	current    string
	log        *logging.Ring
	navigating bool
}

type route struct {
	handler    Handler
	middleware []Middleware
}

// New creates an empty router.
func New(ring *logging.Ring) *Router {
	return &Router{
		routes: make(map[string]route),
		log:    ring,
	}
}

// Register binds a handler, with optional per-route middleware, to a path.
// Registering a path twice replaces the earlier binding.
func (r *Router) Register(path string, h Handler, mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = route{handler: h, middleware: mw}
}

// Use appends middleware that runs before every navigation, ahead of any
// per-route middleware, in registration order.
func (r *Router) Use(mw Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = append(r.global, mw)
}

// OnClearView registers the hook invoked after middleware passes and
// before the handler runs.
func (r *Router) OnClearView(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearView = fn
}

// Current returns the path of the last successful navigation, or "" when
// nothing has been shown yet.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate shows the view at path, handing params through to middleware
// and the handler (nil means no params). An empty path means DefaultPath.
// An unknown path logs one error and redirects, once, to DefaultPath. A
// middleware returning false blocks the navigation with a warning and the
// current view stays as it was. Navigating to the current path re-runs
// the full pipeline.
func (r *Router) Navigate(path string, params map[string]any) {
	if path == "" {
		path = DefaultPath
	}
	if params == nil {
		params = map[string]any{}
	}
	state := State{Path: path, Params: params}

	r.mu.Lock()
	rt, ok := r.routes[path]
	if !ok {
		redirecting := !r.navigating
		r.mu.Unlock()
		r.log.Error("unknown route", map[string]any{"path": path})
		if redirecting {
			r.mu.Lock()
			r.navigating = true
			r.mu.Unlock()
			r.Navigate(DefaultPath, nil)
			r.mu.Lock()
			r.navigating = false
			r.mu.Unlock()
		}
		return
	}
	global := make([]Middleware, len(r.global))
	copy(global, r.global)
	clear := r.clearView
	r.mu.Unlock()

	for _, mw := range global {
		if !mw(state) {
			r.log.Warn("navigation blocked", map[string]any{"path": path})
			return
		}
	}
	for _, mw := range rt.middleware {
		if !mw(state) {
			r.log.Warn("navigation blocked", map[string]any{"path": path})
			return
		}
	}

	if clear != nil {
		clear()
	}
	r.mu.Lock()
	r.current = path
	r.mu.Unlock()
	rt.handler(state)
}
