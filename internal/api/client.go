// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/smartchat-tui/internal/logging"
	"github.com/jeranaias/smartchat-tui/internal/model"
)

// MaxResponseSize is the maximum allowed response body size.
// SECURITY: Response size limit prevents memory exhaustion.
const MaxResponseSize = 10 * 1024 * 1024 // 10MB

// sharedHTTPClient pools connections for all backend requests. No client
// timeout is set; the transport defaults apply and callers cancel through
// contexts.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrServiceUnavailable indicates the assistant backend answered HTTP 503;
// the caller should degrade to local handling rather than retry.
var ErrServiceUnavailable = errors.New("assistant service unavailable")

// StatusError is a non-success HTTP status from the backend, carrying the
// status code and text so callers can distinguish failure classes.
type StatusError struct {
	Status     int
	StatusText string
	Message    string // error body from the backend, if any
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d %s: %s", e.Status, e.StatusText, e.Message)
	}
	return fmt.Sprintf("HTTP %d %s", e.Status, e.StatusText)
}

// IsStatus reports whether err is a *StatusError with the given code.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// TokenSource supplies the current bearer token; it returns "" when the
// session is unauthenticated.
type TokenSource func() string

// Client is the API gateway for the smartchat backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	log        *logging.Ring

	// Probe throttling: rapid re-entries to the dashboard collapse into
	// one /rasa-status request; intermediate calls reuse the last answer.
	probeLimiter *rate.Limiter
	statusMu     sync.Mutex
	lastStatus   bool

	endpoints endpoints
}

// endpoints centralizes backend paths.
type endpoints struct {
	login        string
	refresh      string
	status       string
	chat         string
	accounts     string
	transactions string
}

// NewClient creates a gateway for the given base URL. Failures are logged
// to ring.
func NewClient(baseURL string, ring *logging.Ring) *Client {
	return &Client{
		baseURL:      baseURL,
		httpClient:   sharedHTTPClient,
		token:        func() string { return "" },
		log:          ring,
		probeLimiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
		endpoints: endpoints{
			login:        "/login",
			refresh:      "/refresh",
			status:       "/rasa-status",
			chat:         "/chat",
			accounts:     "/user/accounts",
			transactions: "/user/transactions",
		},
	}
}

// WithTokenSource sets where the gateway reads the bearer token from.
func (c *Client) WithTokenSource(src TokenSource) *Client {
	c.token = src
	return c
}

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

// WithProbeLimiter replaces the status probe limiter (used in tests).
func (c *Client) WithProbeLimiter(l *rate.Limiter) *Client {
	c.probeLimiter = l
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetBaseURL swaps the backend base URL (config hot reload).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// =============================================================================
// CORE REQUEST PATH
// =============================================================================

// CallOption mutates the outgoing request after default headers are set,
// so caller-supplied headers win on conflicting keys.
type CallOption func(*http.Request)

// WithHeader sets an extra request header.
func WithHeader(key, value string) CallOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// call issues method endpoint with the optional JSON body, decoding the
// response into out when out is non-nil.
func (c *Client) call(ctx context.Context, method, endpoint string, body, out any, opts ...CallOption) error {
	err := c.doCall(ctx, method, endpoint, body, out, opts...)
	if err != nil {
		c.log.Error("api call failed", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
	}
	return err
}

func (c *Client) doCall(ctx context.Context, method, endpoint string, body, out any, opts ...CallOption) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			se.Message = eb.Error
		}
		return se
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// LoginResponse is the successful body of POST /login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates with username/password.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResponse
	if err := c.call(ctx, http.MethodPost, c.endpoints.login, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh renews the session token; the bearer header carries the old one.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.call(ctx, http.MethodPost, c.endpoints.refresh, nil, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// =============================================================================
// ASSISTANT ENDPOINTS
// =============================================================================

// AssistantStatus probes whether the remote assistant is usable. Probes
// inside the throttle window reuse the previous answer without a request.
func (c *Client) AssistantStatus(ctx context.Context) (bool, error) {
	c.statusMu.Lock()
	allowed := c.probeLimiter.Allow()
	if !allowed {
		last := c.lastStatus
		c.statusMu.Unlock()
		return last, nil
	}
	c.statusMu.Unlock()

	var out struct {
		Status string `json:"status"`
	}
	err := c.call(ctx, http.MethodGet, c.endpoints.status, nil, &out)
	connected := err == nil && out.Status == "connected"

	c.statusMu.Lock()
	c.lastStatus = connected
	c.statusMu.Unlock()

	if err != nil {
		return false, err
	}
	return connected, nil
}

// ChatFragment is one textual piece of an assistant reply.
type ChatFragment struct {
	Text string `json:"text"`
}

// ChatResponse is the body of POST /chat.
type ChatResponse struct {
	SessionID string         `json:"session_id"`
	Responses []ChatFragment `json:"responses"`
}

// SendChat forwards a message to the remote assistant. An HTTP 503 is
// wrapped in ErrServiceUnavailable so callers can degrade without poking at
// status codes.
func (c *Client) SendChat(ctx context.Context, message, sessionID string) (*ChatResponse, error) {
	body := map[string]string{"message": message, "session_id": sessionID}
	var out ChatResponse
	if err := c.call(ctx, http.MethodPost, c.endpoints.chat, body, &out); err != nil {
		if IsStatus(err, http.StatusServiceUnavailable) {
			return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// ACCOUNT ENDPOINTS
// =============================================================================

// Accounts fetches the authenticated user's accounts.
func (c *Client) Accounts(ctx context.Context) ([]model.Account, error) {
	var out []model.Account
	if err := c.call(ctx, http.MethodGet, c.endpoints.accounts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Transactions fetches up to limit recent transactions.
func (c *Client) Transactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	endpoint := c.endpoints.transactions
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}
	var out []model.Transaction
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
