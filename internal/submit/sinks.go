// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// sinkTimeout bounds each sink call.
const sinkTimeout = 15 * time.Second

var errNotConfigured = errors.New("not configured")

// Relay posts forms to a transactional-email relay as multipart form data.
// The access key travels as a form field.
type Relay struct {
	url       string
	accessKey string
	fromName  string
	http      *http.Client
}

// NewRelay creates the relay sink.
func NewRelay(relayURL, accessKey, fromName string) *Relay {
	return &Relay{
		url:       strings.TrimSpace(relayURL),
		accessKey: accessKey,
		fromName:  fromName,
		http:      &http.Client{Timeout: sinkTimeout},
	}
}

type relayResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Send implements Sink.
func (r *Relay) Send(ctx context.Context, kind Kind, f Fields) error {
	if r.url == "" {
		return fmt.Errorf("relay: %w", errNotConfigured)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	parts := [][2]string{
		{"access_key", r.accessKey},
		{"subject", kind.Subject()},
		{"from_name", r.fromName},
		{"form", string(kind)},
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
	}
	if f.Message != "" {
		parts = append(parts, [2]string{"message", f.Message})
	}
	for _, p := range parts {
		if err := mw.WriteField(p[0], p[1]); err != nil {
			return fmt.Errorf("relay: write %s: %w", p[0], err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("relay: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, &body)
	if err != nil {
		return fmt.Errorf("relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relay: status %d", resp.StatusCode)
	}
	// Some relays answer 200 with {"success": false}.
	var out relayResponse
	if json.Unmarshal(raw, &out) == nil && out.Success != nil && !*out.Success {
		return fmt.Errorf("relay: rejected: %s", out.Message)
	}
	return nil
}

// Submit paths on the API origin, one per form.
const (
	ContactSubmitPath    = "/api/contact-queries/submit"
	InvestmentSubmitPath = "/api/investment/submit"
)

// SubmitPath returns the persistence endpoint for the form kind.
func SubmitPath(k Kind) string {
	if k == KindInvestment {
		return InvestmentSubmitPath
	}
	return ContactSubmitPath
}

// API posts forms as JSON to the internal persistence API.
type API struct {
	origin string
	http   *http.Client
}

// NewAPI creates the persistence sink for an API origin.
func NewAPI(origin string) *API {
	return &API{
		origin: strings.TrimRight(strings.TrimSpace(origin), "/"),
		http:   &http.Client{Timeout: sinkTimeout},
	}
}

// Send implements Sink.
func (a *API) Send(ctx context.Context, kind Kind, f Fields) error {
	if a.origin == "" {
		return fmt.Errorf("api: %w", errNotConfigured)
	}
	target, err := url.JoinPath(a.origin, SubmitPath(kind))
	if err != nil {
		return fmt.Errorf("api: build url: %w", err)
	}
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("api: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api: %s status %d", SubmitPath(kind), resp.StatusCode)
	}
	return nil
}
