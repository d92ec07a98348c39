// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package flash carries a form's outcome across the redirect that follows a
// submission. Entries are identified by a cookie, stored as JSON with a
// short TTL and deleted on first read.
package flash

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dholerasite/internal/submit"
)

const (
	// CookieName is the name of the flash cookie sent to the browser.
	CookieName = "dh_flash"

	// DefaultTTL is how long an unread flash survives.
	DefaultTTL = 5 * time.Minute

	// keyPrefix namespaces flash keys in Valkey.
	keyPrefix = "flash:"

	// idLength is the byte length of the random flash ID (16 bytes = 32 hex chars).
	idLength = 16
)

// Data is one stored outcome.
type Data struct {
	Path    string        `json:"path"`  // page the form lives on
	Level   string        `json:"level"` // "success", "warning", "error"
	Message string        `json:"message"`
	Fields  submit.Fields `json:"fields"` // values to put back in the form
}

// Backend stores flash payloads. Take must delete what it returns.
type Backend interface {
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// Take returns the payload and deletes it, or nil when absent.
	Take(ctx context.Context, key string) ([]byte, error)
}

// Store manages flash entries over a Backend.
type Store struct {
	backend Backend
	ttl     time.Duration
	secure  bool
}

// NewStore creates a flash store. secure sets the cookie's Secure flag.
func NewStore(backend Backend, secure bool) *Store {
	return &Store{
		backend: backend,
		ttl:     DefaultTTL,
		secure:  secure,
	}
}

// Set stores data and sets the flash cookie on the response.
func (s *Store) Set(ctx context.Context, w http.ResponseWriter, data *Data) error {
	id, err := generateID()
	if err != nil {
		return fmt.Errorf("flash create: %w", err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("flash marshal: %w", err)
	}

	if err := s.backend.Put(ctx, keyPrefix+id, payload, s.ttl); err != nil {
		return fmt.Errorf("flash store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return nil
}

// Pop returns and deletes the flash for this request, clearing the cookie.
// It returns nil when there is none. A flash set for another page is
// discarded.
func (s *Store) Pop(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil // No cookie = no flash (not an error)
	}

	payload, err := s.backend.Take(ctx, keyPrefix+cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("flash get: %w", err)
	}
	clearCookie(w)
	if payload == nil {
		return nil, nil // Expired or already shown
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("flash unmarshal: %w", err)
	}
	if data.Path != "" && data.Path != r.URL.Path {
		return nil, nil
	}
	return &data, nil
}

func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateID creates a cryptographically random flash identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
