// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/peterh/liner"

	"github.com/jeranaias/smartchat-tui/internal/api"
	"github.com/jeranaias/smartchat-tui/internal/chat"
	"github.com/jeranaias/smartchat-tui/internal/config"
	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/model"
	"github.com/jeranaias/smartchat-tui/internal/session"
	"github.com/jeranaias/smartchat-tui/internal/validate"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	welcomeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	stampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// =============================================================================
// REPL
// =============================================================================

// REPL is the line-oriented chat front end.
type REPL struct {
	cfg        *config.Config
	log        *logging.Ring
	session    *session.Store
	apiClient  *api.Client
	dispatcher *chat.Dispatcher
	refresher  *session.RefreshScheduler

	line     *liner.State
	renderer *glamour.TermRenderer
	out      io.Writer

	historyPath string
	done        bool
}

// New creates a REPL over the shared application dependencies.
func New(cfg *config.Config, ring *logging.Ring, sess *session.Store, apiClient *api.Client, dispatcher *chat.Dispatcher, refresher *session.RefreshScheduler) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithColorProfile(ColorProfile()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}

	historyPath := ""
	if home, herr := os.UserHomeDir(); herr == nil {
		historyPath = filepath.Join(home, ".smartchat", "repl_history")
	}

	return &REPL{
		cfg:         cfg,
		log:         ring,
		session:     sess,
		apiClient:   apiClient,
		dispatcher:  dispatcher,
		refresher:   refresher,
		line:        line,
		renderer:    renderer,
		out:         os.Stdout,
		historyPath: historyPath,
	}
}

// Close saves input history and releases the terminal.
func (r *REPL) Close() {
	if r.historyPath != "" {
		if f, err := os.Create(r.historyPath); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// Run drives the session: login if needed, then the chat loop.
func (r *REPL) Run(ctx context.Context) error {
	defer r.Close()

	fmt.Fprintln(r.out, welcomeStyle.Render("SmartChat"))
	fmt.Fprintln(r.out, infoStyle.Render("Backend: "+r.cfg.BaseURL()))
	fmt.Fprintln(r.out, infoStyle.Render("Type /help for commands, /quit to exit."))
	fmt.Fprintln(r.out)

	if r.historyPath != "" {
		if f, err := os.Open(r.historyPath); err == nil {
			r.line.ReadHistory(f)
			f.Close()
		}
	}

	if !r.session.Authenticated() {
		if err := r.login(ctx); err != nil {
			if errors.Is(err, errAborted) {
				return nil
			}
			return err
		}
	} else if u := r.session.User(); u != nil {
		fmt.Fprintln(r.out, infoStyle.Render("Resuming session for "+u.DisplayName()))
	}
	r.refresher.Start()
	defer r.refresher.Stop()

	if r.dispatcher.Probe(ctx) {
		fmt.Fprintln(r.out, infoStyle.Render("Assistant online."))
	} else {
		fmt.Fprintln(r.out, warningStyle.Render("Assistant offline: only balance, account, and transaction questions are answered."))
	}
	r.replayHistory()

	return r.loop(ctx)
}

// login prompts until credentials validate and the server accepts them.
func (r *REPL) login(ctx context.Context) error {
	for {
		username, err := r.line.Prompt("username: ")
		if err != nil {
			return promptErr(err)
		}
		password, err := r.line.PasswordPrompt("password: ")
		if err != nil {
			return promptErr(err)
		}

		result := validate.ValidateForm(
			map[string]string{"username": username, "password": password},
			map[string][]validate.Rule{
				"username": {validate.Required},
				"password": {validate.Required, validate.MinLength(6)},
			},
		)
		if !result.IsValid {
			for field, msg := range result.Errors {
				fmt.Fprintln(r.out, errorStyle.Render(field+": "+msg))
			}
			continue
		}

		resp, err := r.apiClient.Login(ctx, strings.TrimSpace(username), password)
		if err != nil {
			if api.IsStatus(err, 401) {
				fmt.Fprintln(r.out, errorStyle.Render("Invalid username or password."))
			} else {
				fmt.Fprintln(r.out, errorStyle.Render("Login failed: "+err.Error()))
			}
			continue
		}
		if err := r.session.LoginSuccess(resp.Token, resp.User); err != nil {
			r.log.Warn("failed to persist session", map[string]any{"error": err.Error()})
		}
		fmt.Fprintln(r.out, infoStyle.Render("Welcome, "+resp.User.DisplayName()))
		return nil
	}
}

// replayHistory prints the persisted transcript so the conversation picks
// up where it left off.
func (r *REPL) replayHistory() {
	messages, err := r.dispatcher.History()
	if err != nil || len(messages) == 0 {
		return
	}
	fmt.Fprintln(r.out, infoStyle.Render("--- earlier messages ---"))
	for _, msg := range messages {
		r.printMessage(msg)
	}
	fmt.Fprintln(r.out, infoStyle.Render("------------------------"))
}

func (r *REPL) loop(ctx context.Context) error {
	for !r.done {
		if !r.session.Authenticated() {
			fmt.Fprintln(r.out, warningStyle.Render("Session expired, please log in again."))
			if err := r.login(ctx); err != nil {
				if errors.Is(err, errAborted) {
					return nil
				}
				return err
			}
			r.refresher.Start()
		}

		input, err := r.line.Prompt(promptStyle.Render("you> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			r.command(ctx, input)
			continue
		}

		replies, err := r.dispatcher.Send(ctx, input)
		if err != nil {
			fmt.Fprintln(r.out, errorStyle.Render("Error: "+err.Error()))
			continue
		}
		for _, reply := range replies {
			r.printMessage(reply)
		}
	}
	return nil
}

// command handles slash commands.
func (r *REPL) command(ctx context.Context, input string) {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/help", "/h":
		fmt.Fprintln(r.out, strings.Join([]string{
			"Commands:",
			"  /help      show this help",
			"  /status    show assistant availability",
			"  /logout    log out and clear this user's chat history",
			"  /quit      exit",
		}, "\n"))
	case "/status", "/s":
		if r.dispatcher.Probe(ctx) {
			fmt.Fprintln(r.out, infoStyle.Render("Assistant online."))
		} else {
			fmt.Fprintln(r.out, warningStyle.Render("Assistant offline."))
		}
	case "/logout":
		r.refresher.Stop()
		r.session.Logout()
		fmt.Fprintln(r.out, infoStyle.Render("Logged out."))
	case "/quit", "/q", "/exit":
		r.done = true
	default:
		fmt.Fprintln(r.out, warningStyle.Render("Unknown command. Type /help."))
	}
}

func (r *REPL) printMessage(msg model.ChatMessage) {
	stamp := stampStyle.Render(msg.Time)
	if msg.Sender == model.SenderUser {
		fmt.Fprintf(r.out, "%s %s %s\n", stamp, promptStyle.Render("you"), msg.Content)
		return
	}
	body := msg.Content
	if r.renderer != nil {
		if rendered, err := r.renderer.Render(msg.Content); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	fmt.Fprintf(r.out, "%s bot %s\n", stamp, body)
}

// ColorProfile reports the detected terminal color capability.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// errAborted marks a prompt the user cancelled with Ctrl+C or Ctrl+D.
var errAborted = errors.New("prompt aborted")

func promptErr(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return errAborted
	}
	return err
}
