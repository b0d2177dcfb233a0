// Package api is the typed HTTP client for the SurveyDesk REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const defaultRequestTimeout = 30 * time.Second

// Client issues JSON requests against the API base URL. A single default
// bearer credential is shared by every request issued through the client;
// the session manager installs and clears it, nothing else writes it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	credentialLock sync.RWMutex
	credential     string
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRateLimit adjusts the client-side request rate limit.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(20), 40),
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// SetCredential installs the default bearer credential carried by all
// subsequent requests.
func (c *Client) SetCredential(token string) {
	c.credentialLock.Lock()
	defer c.credentialLock.Unlock()
	c.credential = token
}

// ClearCredential removes the default bearer credential.
func (c *Client) ClearCredential() {
	c.credentialLock.Lock()
	defer c.credentialLock.Unlock()
	c.credential = ""
}

func (c *Client) bearer() string {
	c.credentialLock.RLock()
	defer c.credentialLock.RUnlock()
	return c.credential
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "[Client.do] rate limiter")
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] encode request")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "[Client.do] new request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred := c.bearer(); cred != "" {
		req.Header.Set("Authorization", "Bearer "+cred)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.Wrapf(ErrUnauthorized, "%s %s", method, path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Wrapf(ErrRequestFailed, "%s %s: %s", method, path, resp.Status)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "[Client.do] decode %s %s response", method, path)
	}
	return nil
}
