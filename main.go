// smartchat TUI - a terminal client for the SmartChat banking assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/smartchat-tui/internal/api"
	"github.com/jeranaias/smartchat-tui/internal/chat"
	"github.com/jeranaias/smartchat-tui/internal/cli"
	"github.com/jeranaias/smartchat-tui/internal/config"
	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/session"
	"github.com/jeranaias/smartchat-tui/internal/storage"
	"github.com/jeranaias/smartchat-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		plain       = flag.Bool("plain", false, "use the line-oriented REPL instead of the full-screen TUI")
		configPath  = flag.String("config", "", "path to config file (default ~/.smartchat/config.toml)")
		platform    = flag.String("platform", "", "API platform target: emulator, device, or browser")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("smartchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smartchat: %v\n", err)
		os.Exit(1)
	}
	if *platform != "" {
		cfg.API.Platform = config.Platform(*platform)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "smartchat: %v\n", err)
			os.Exit(1)
		}
	}

	ring := logging.NewRing(cfg.Log.MaxEntries)

	store, err := storage.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "smartchat: %v\n", err)
		os.Exit(1)
	}
	history := storage.NewHistoryStore(store)
	history.MaxMessages = cfg.Chat.HistoryMaxMessages

	sess := session.NewStore(store, history, ring)
	sess.Load()

	client := api.NewClient(cfg.BaseURL(), ring).
		WithTokenSource(sess.Token)

	dispatcher := chat.NewDispatcher(client, sess, history, ring,
		time.Duration(cfg.Chat.LocalDelayMs)*time.Millisecond)

	refresher := session.NewRefreshScheduler(sess, client, ring,
		time.Duration(cfg.Chat.RefreshIntervalMins)*time.Minute)

	// Config changes on disk retarget the API client without a restart.
	if path, perr := configFile(*configPath); perr == nil {
		watcher, werr := config.NewWatcher(path, func(updated *config.Config) {
			client.SetBaseURL(updated.BaseURL())
			ring.Info("configuration reloaded", map[string]any{"base_url": updated.BaseURL()})
		})
		if werr == nil {
			werr = watcher.Watch()
		}
		if werr != nil {
			ring.Warn("config watcher unavailable", map[string]any{"error": werr.Error()})
		} else {
			defer watcher.Close()
		}
	}

	if *plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		repl := cli.New(cfg, ring, sess, client, dispatcher, refresher)
		if err := repl.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "smartchat: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app := ui.New(ui.Deps{
		Config:     cfg,
		Log:        ring,
		Session:    sess,
		API:        client,
		Dispatcher: dispatcher,
		Refresher:  refresher,
	})
	program := tea.NewProgram(app, tea.WithAltScreen())

	// A failed background token refresh ends the session; the UI needs to
	// hear about it to fall back to the login view.
	sess.OnLogout(func() {
		program.Send(ui.SessionEndedMsg{})
	})

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "smartchat: %v\n", err)
		os.Exit(1)
	}
	refresher.Stop()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func configFile(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultPath()
}
