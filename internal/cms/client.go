// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cms fetches section documents from the content backend. It knows
// nothing about schemas: it returns the raw body of a successful GET and
// reports everything else as content unavailable.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dholerasite/internal/provider"
)

// maxDocumentSize bounds how much of a response body is read.
const maxDocumentSize = 4 << 20

// DefaultTimeout is the transport-level bound on a content fetch.
const DefaultTimeout = 30 * time.Second

// errNotConfigured is returned by a client without a base origin.
var errNotConfigured = errors.New("cms: no api origin configured")

// Client performs content GETs against a base origin.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given origin. An empty origin yields a
// client whose every fetch fails closed, so pages keep their defaults.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured origin.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch issues one GET for endpoint and returns the body of a 2xx response.
// There are no retries. Every failure wraps provider.ErrContentUnavailable.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: %v", provider.ErrContentUnavailable, errNotConfigured)
	}
	target, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: build url: %v", provider.ErrContentUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: request: %v", provider.ErrContentUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrContentUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxDocumentSize))
		return nil, fmt.Errorf("%w: %s returned status %d", provider.ErrContentUnavailable, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", provider.ErrContentUnavailable, err)
	}
	return body, nil
}
