// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"
	"time"

	"github.com/jeranaias/smartchat-tui/internal/logging"
)

// DefaultRefreshInterval is how often a held token is renewed.
const DefaultRefreshInterval = 15 * time.Minute

// Refresher exchanges the current token for a fresh one.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// =============================================================================
// REFRESH SCHEDULER
// =============================================================================

// RefreshScheduler renews the session token on a fixed interval while a
// user is logged in. A failed renewal of any kind ends the session: the
// expiring token is not kept, and no retry is attempted.
type RefreshScheduler struct {
	store    *Store
	client   Refresher
	log      *logging.Ring
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewRefreshScheduler creates a scheduler. A non-positive interval falls
// back to DefaultRefreshInterval.
func NewRefreshScheduler(store *Store, client Refresher, ring *logging.Ring, interval time.Duration) *RefreshScheduler {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &RefreshScheduler{
		store:    store,
		client:   client,
		log:      ring,
		interval: interval,
	}
}

// Start begins the periodic renewal loop. Calling Start while a loop is
// already running restarts the interval.
func (r *RefreshScheduler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.run(ctx)
}

// Stop halts the renewal loop. Safe to call when not running.
func (r *RefreshScheduler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *RefreshScheduler) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !r.tick(ctx) {
				return
			}
		}
	}
}

// tick performs one renewal. It returns false when the loop should end.
func (r *RefreshScheduler) tick(ctx context.Context) bool {
	if !r.store.Authenticated() {
		return false
	}
	token, err := r.client.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		r.log.Error("token refresh failed, ending session", map[string]any{"error": err.Error()})
		r.Stop()
		r.store.Logout()
		return false
	}
	if err := r.store.SetToken(token); err != nil {
		r.log.Error("failed to persist refreshed token, ending session", map[string]any{"error": err.Error()})
		r.Stop()
		r.store.Logout()
		return false
	}
	r.log.Info("session token refreshed", nil)
	return true
}
