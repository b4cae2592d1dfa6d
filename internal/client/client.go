// ABOUTME: Session-aware HTTP gateway to the hotel booking backend
// ABOUTME: Attaches the bearer token, normalizes failures, and invalidates the session on 401

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	"github.com/abhinavhh/hotel-booking-client/internal/session"
)

// DefaultBaseURL is used when no API URL is configured
const DefaultBaseURL = "http://localhost:5000/api"

// DefaultTimeout bounds each request unless overridden
const DefaultTimeout = 30 * time.Second

// Auth endpoints reachable without a session
const (
	PathLogin          = "/auth/login"
	PathRegister       = "/auth/register"
	PathForgotPassword = "/auth/forgot-password"
	PathVerifyOTP      = "/auth/verify-otp"
	PathResetPassword  = "/auth/reset-password"
	PathMe             = "/auth/me"
)

var exemptPaths = map[string]bool{
	PathLogin:          true,
	PathRegister:       true,
	PathForgotPassword: true,
	PathVerifyOTP:      true,
	PathResetPassword:  true,
}

// IsAuthExempt reports whether path never carries the bearer token.
// The query string is ignored; matching is exact.
func IsAuthExempt(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return exemptPaths[path]
}

// InvalidationEvent is emitted when a protected call is answered with 401
type InvalidationEvent struct {
	Path   string
	Method string
	At     time.Time
}

// Client is the gateway through which every backend call flows
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Manager
	logger     *slog.Logger

	mu        sync.Mutex
	listeners map[int]func(InvalidationEvent)
	nextID    int
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing and session warnings
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a gateway for baseURL bound to sess
func New(baseURL string, sess *session.Manager, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if sess == nil {
		sess = session.New(nil)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		session:   sess,
		logger:    slog.Default(),
		listeners: make(map[int]func(InvalidationEvent)),
	}

	// cookiejar.New never returns an error
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	c.httpClient = &http.Client{
		Timeout: DefaultTimeout,
		Jar:     jar,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Transport == nil {
		c.httpClient.Transport = newLoggingTransport(http.DefaultTransport, c.logger)
	}
	return c
}

// BaseURL returns the backend root all paths are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session the gateway maintains
func (c *Client) Session() *session.Manager {
	return c.session
}

// OnSessionInvalidated registers fn to run whenever a protected call gets a 401.
// The returned function removes the subscription.
func (c *Client) OnSessionInvalidated(fn func(InvalidationEvent)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Response is a successful backend reply
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON body into v
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return contractError(r.Status, fmt.Errorf("invalid response from backend: %w", err))
	}
	return nil
}

// Request sends a JSON request to path. A nil body sends no payload.
// Failures are always returned as *Error.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Response, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Message: "Invalid request", Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, contentType, reader)
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (*Response, error) {
	exempt := IsAuthExempt(path)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "Invalid request", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !exempt {
		if token := c.session.Token(); token != "" {
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}

	if !isSuccess(resp.StatusCode) {
		apiErr := handleErrorResponse(resp.StatusCode, data)
		if resp.StatusCode == http.StatusUnauthorized && !exempt {
			c.invalidate(ctx, method, path)
			apiErr.SessionExpired = true
		}
		return nil, apiErr
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// handleRequestError converts transport and context errors to user-facing failures
func (c *Client) handleRequestError(ctx context.Context, err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return &Error{Kind: KindCanceled, Message: "request canceled", Err: err}
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Kind: KindCanceled, Message: "request timed out", Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: KindNetwork, Message: "request timed out", Err: err}
	}
	return &Error{
		Kind:    KindNetwork,
		Message: MsgNoResponse,
		Err:     fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err),
	}
}

// invalidate clears the session and notifies subscribers
func (c *Client) invalidate(ctx context.Context, method, path string) {
	c.logger.Warn("Unauthorized, redirecting to login", "method", method, "path", path)

	if err := c.session.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("Failed to clear persisted token", "error", err)
	}

	c.mu.Lock()
	fns := make([]func(InvalidationEvent), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	ev := InvalidationEvent{Path: path, Method: method, At: time.Now()}
	for _, fn := range fns {
		fn(ev)
	}
}
