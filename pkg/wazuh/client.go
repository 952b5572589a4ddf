// SPDX-FileCopyrightText: Copyright 2026 The Wazgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package wazuh implements a token-caching client for the Wazuh Manager
// REST API. Credentials are exchanged once for a JWT which is reused for
// every request until shortly before it expires; concurrent refreshes are
// collapsed into a single upstream call.
package wazuh

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wazgate/wazgate/pkg/logger"
	"github.com/wazgate/wazgate/pkg/telemetry"
)

const (
	// authPath is the manager endpoint that exchanges basic-auth
	// credentials for a JWT.
	authPath = "/security/user/authenticate"

	// tokenLifetime is how long we trust a freshly issued token. The
	// manager's default auth_token_exp_timeout is 900 seconds; staying at
	// that floor keeps us safe on managers with longer configured TTLs.
	tokenLifetime = 15 * time.Minute

	// expiryMargin forces a refresh this long before the token would
	// lapse so requests already in flight don't race the expiry.
	expiryMargin = 60 * time.Second

	// defaultTimeout bounds each manager request when the target config
	// does not set one.
	defaultTimeout = 30 * time.Second
)

// Config describes how to reach one manager instance.
type Config struct {
	// Name identifies the target in logs and metrics.
	Name string
	// BaseURL is the manager API root, e.g. https://wazuh.example.com:55000.
	BaseURL string
	// Username and Password are the basic-auth bootstrap credentials.
	Username string
	Password string
	// SSLVerify controls server certificate verification. Defaults to
	// verifying; disable only for self-signed manager certificates.
	SSLVerify bool
	// Timeout bounds each request including the token exchange.
	Timeout time.Duration
}

// Client is a manager API client with a cached JWT. It is safe for
// concurrent use.
type Client struct {
	name     string
	baseURL  *url.URL
	username string
	password string
	http     *http.Client

	mu      sync.RWMutex
	token   string
	expires time.Time

	refreshGroup singleflight.Group

	// now is replaceable in tests.
	now func() time.Time
}

// New validates cfg and returns a client. No network traffic happens
// until the first request.
func New(cfg Config) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme must be http or https, got: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", cfg.BaseURL)
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
	}

	// Only set a custom transport when we need to override TLS settings.
	// Otherwise use http.DefaultTransport which includes proxy support
	// and proper defaults.
	if !cfg.SSLVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // User explicitly requested insecure mode
		}
		httpClient.Transport = transport
	}

	return &Client{
		name:     cfg.Name,
		baseURL:  parsed,
		username: cfg.Username,
		password: cfg.Password,
		http:     httpClient,
		now:      time.Now,
	}, nil
}

// Name returns the target name the client was built for.
func (c *Client) Name() string {
	return c.name
}

// validToken returns the cached token if it is still inside the safety
// margin.
func (c *Client) validToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token != "" && c.expires.Sub(c.now()) > expiryMargin {
		return c.token, true
	}
	return "", false
}

// ensureToken returns a usable token, refreshing the cache if needed.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if token, ok := c.validToken(); ok {
		return token, nil
	}
	return c.refreshToken(ctx)
}

// refreshToken performs the credential exchange. Concurrent callers share
// a single upstream call via singleflight.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	result, err, _ := c.refreshGroup.Do("token", func() (any, error) {
		// Double-check: another caller may have refreshed while we
		// queued behind the flight.
		if token, ok := c.validToken(); ok {
			return token, nil
		}

		token, err := c.fetchToken(ctx)
		if err != nil {
			telemetry.RecordTokenRefresh(c.name, telemetry.OutcomeError)
			return nil, err
		}

		c.mu.Lock()
		c.token = token
		c.expires = c.now().Add(tokenLifetime)
		expires := c.expires
		c.mu.Unlock()

		telemetry.RecordTokenRefresh(c.name, telemetry.OutcomeSuccess)
		logger.Debugw("token refreshed", "target", c.name, "expires_at", expires)
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// fetchToken exchanges the basic-auth credentials for a JWT.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(authPath, nil), nil)
	if err != nil {
		return "", fmt.Errorf("%w: building auth request: %v", ErrAuthentication, err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading auth response: %v", ErrAuthentication, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: manager returned %d", ErrAuthentication, resp.StatusCode)
	}

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: decoding auth response: %v", ErrAuthentication, err)
	}
	if payload.Data.Token == "" {
		return "", fmt.Errorf("%w: auth response carried no token", ErrAuthentication)
	}
	return payload.Data.Token, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// invalidate drops the cached token so the next request re-authenticates.
func (c *Client) invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expires = time.Time{}
	c.mu.Unlock()
}

// forceRefresh drops the cached token and fetches a new one.
func (c *Client) forceRefresh(ctx context.Context) (string, error) {
	c.invalidate()
	return c.refreshToken(ctx)
}

// Request performs one authenticated call against the manager API and
// returns the raw response body. path must start with "/" and already be
// escaped; query may be nil.
//
// A 401 on a token we believed valid triggers exactly one forced refresh
// and one retry; a second 401 surfaces as ErrAuthentication.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	body, status, err := c.send(ctx, method, path, query, token)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		logger.Warnw("token rejected, refreshing once", "target", c.name, "path", path)
		token, err = c.forceRefresh(ctx)
		if err != nil {
			return nil, err
		}
		body, status, err = c.send(ctx, method, path, query, token)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: request rejected after token refresh", ErrAuthentication)
		}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, apiErrorFrom(status, body)
	}
	return body, nil
}

// send performs a single HTTP exchange with the given bearer token.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, token string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: building request: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	return body, resp.StatusCode, nil
}

// endpoint joins the base URL with an escaped request path and query.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// apiErrorFrom decodes the manager's RFC 7807 style error body.
func apiErrorFrom(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Title = payload.Title
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
