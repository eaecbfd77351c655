// Package glpi is a client for the GLPI legacy REST API (apirest.php).
//
// It opens and closes sessions, searches assets by name and lists their
// network ports, handing back raw records for the domain classifier.
package glpi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"glpiexplorer/internal/config"
	"glpiexplorer/internal/logging"
)

var (
	// ErrUnauthorized is wrapped by errors for HTTP 401 responses
	ErrUnauthorized = errors.New("glpi: unauthorized")
	// ErrNoSession is returned when an operation needs a session and none is open
	ErrNoSession = errors.New("glpi: no active session")
	// ErrNotFound is returned when no asset matches a search
	ErrNotFound = errors.New("glpi: not found")
)

// APIError describes a non-2xx response from GLPI
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("glpi %s failed: %s: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("glpi %s failed: %s", e.Endpoint, e.Status)
}

// Unwrap maps 401 responses to ErrUnauthorized
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client interacts with GLPI REST API.
type Client struct {
	cfg        config.Config
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	token      string
	mu         sync.Mutex
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient builds a GLPI client. A session token stored in cfg is reused.
func NewClient(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		baseURL:    config.NormalizeURL(cfg.GLPIURL),
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration()},
		token:      cfg.SessionToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrDiscard(c.logger)
	return c
}

// SessionToken returns the current session token, empty when none is open
func (c *Client) SessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// InitSession opens a new session and returns its token. A configured user
// token is used when present; otherwise login and password are posted, with
// a fallback to GET and HTTP basic auth for servers that reject POST.
func (c *Client) InitSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initSessionLocked(ctx)
}

func (c *Client) initSessionLocked(ctx context.Context) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("glpi base url not configured")
	}

	var (
		resp *http.Response
		err  error
	)
	if c.cfg.UserToken != "" {
		resp, err = c.send(ctx, http.MethodGet, "initSession", nil, nil, func(req *http.Request) {
			req.Header.Set("Authorization", "user_token "+c.cfg.UserToken)
		})
	} else {
		if c.cfg.UserLogin == "" {
			return "", fmt.Errorf("glpi login missing")
		}
		payload := map[string]string{"login": c.cfg.UserLogin, "password": c.cfg.UserPassword}
		resp, err = c.send(ctx, http.MethodPost, "initSession", nil, payload, nil)
		if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
			resp.Body.Close()
			c.logger.Debug("initSession rejected POST, retrying with GET")
			resp, err = c.send(ctx, http.MethodGet, "initSession", nil, nil, func(req *http.Request) {
				req.SetBasicAuth(c.cfg.UserLogin, c.cfg.UserPassword)
			})
		}
	}
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, "initSession"); err != nil {
		return "", err
	}

	var payload struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode initSession response: %w", err)
	}
	if payload.SessionToken == "" {
		return "", fmt.Errorf("glpi session token empty")
	}

	c.token = payload.SessionToken
	c.logger.Info("glpi session opened", "url", c.baseURL)
	return c.token, nil
}

// KillSession closes the current session. Closing without a session is a
// no-op.
func (c *Client) KillSession(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		c.logger.Info("no active glpi session to close")
		return nil
	}

	resp, err := c.send(ctx, http.MethodPost, "killSession", nil, nil, c.withSession)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		resp.Body.Close()
		resp, err = c.send(ctx, http.MethodGet, "killSession", nil, nil, c.withSession)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// An expired session is as good as a closed one
	if resp.StatusCode != http.StatusUnauthorized {
		if err := checkResponse(resp, "killSession"); err != nil {
			return err
		}
	}

	c.token = ""
	c.logger.Info("glpi session closed")
	return nil
}

// ensureSession opens a session when none is held. Callers hold c.mu.
func (c *Client) ensureSession(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	if c.cfg.UserToken == "" && c.cfg.UserLogin == "" {
		return ErrNoSession
	}
	_, err := c.initSessionLocked(ctx)
	return err
}

func (c *Client) withSession(req *http.Request) {
	req.Header.Set("Session-Token", c.token)
}

// getJSON issues an authenticated GET and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	resp, err := c.send(ctx, http.MethodGet, endpoint, query, nil, c.withSession)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, endpoint); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, query url.Values, body any, decorate func(*http.Request)) (*http.Response, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AppToken != "" {
		req.Header.Set("App-Token", c.cfg.AppToken)
	}
	if decorate != nil {
		decorate(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("glpi %s: %w", endpoint, err)
	}
	c.logger.Debug("glpi request", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
	return resp, nil
}

func checkResponse(resp *http.Response, endpoint string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(body)),
	}
}
