// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package provider holds the per-section content state: a compiled-in
// default that is replaced wholesale, at most once per mount, by the
// document the content backend returns. It never merges the two.
package provider

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrContentUnavailable covers every reason a fetch produced no content:
// transport failure, non-2xx status, an unreadable body or an empty
// document. It is recovered by keeping the default and is never shown to
// visitors.
var ErrContentUnavailable = errors.New("content unavailable")

// Fetcher performs the GET of a content endpoint and returns the raw body.
// Implementations wrap their failures with ErrContentUnavailable.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) ([]byte, error)
}

// State is the position of a mount in its lifecycle.
type State int

const (
	// StateDefault holds the compiled-in default; no fetch was started.
	StateDefault State = iota
	// StateFetching holds the default while the single fetch is in flight.
	StateFetching
	// StateRemote holds the remote document. Terminal.
	StateRemote
	// StateDefaultRetained holds the default after a failed or empty fetch.
	// Terminal: the fetch is not retried for the lifetime of the mount.
	StateDefaultRetained
)

func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateFetching:
		return "fetching"
	case StateRemote:
		return "remote"
	case StateDefaultRetained:
		return "default-retained"
	default:
		return "unknown"
	}
}

// Provider binds a section schema to its endpoint and default factory.
// It is safe for concurrent use; all per-visit state lives in Mount.
type Provider[T any] struct {
	key      string
	endpoint string
	defaults func() *T
	fetcher  Fetcher
}

// New creates a provider. defaults must return a fresh tree on every call.
// A nil fetcher means no content backend is configured: every mount keeps
// its default.
func New[T any](key, endpoint string, defaults func() *T, fetcher Fetcher) *Provider[T] {
	return &Provider[T]{
		key:      key,
		endpoint: endpoint,
		defaults: defaults,
		fetcher:  fetcher,
	}
}

// Key returns the section key.
func (p *Provider[T]) Key() string { return p.key }

// Endpoint returns the content endpoint path.
func (p *Provider[T]) Endpoint() string { return p.endpoint }

// Default returns a fresh copy of the compiled-in default.
func (p *Provider[T]) Default() *T { return p.defaults() }

// Mount starts a new lifecycle: the mount holds a fresh default and, when a
// fetcher is configured, issues exactly one fetch. The fetch runs detached
// from ctx's cancellation, so leaving the page never aborts it; its result
// is simply discarded once the mount is gone.
func (p *Provider[T]) Mount(ctx context.Context) *Mount[T] {
	m := &Mount[T]{
		key:      p.key,
		endpoint: p.endpoint,
		current:  p.defaults(),
		state:    StateDefault,
		live:     true,
		settled:  make(chan struct{}),
	}
	if p.fetcher == nil {
		m.state = StateDefaultRetained
		close(m.settled)
		return m
	}
	m.state = StateFetching
	go m.fetch(context.WithoutCancel(ctx), p.fetcher)
	return m
}

// Mount is one lifecycle of a section's content.
type Mount[T any] struct {
	key      string
	endpoint string

	mu      sync.Mutex
	current *T
	state   State
	live    bool
	settled chan struct{}
}

// Current returns the tree held right now. The pointer is replaced, never
// mutated, when the remote document arrives; callers must not modify it.
func (m *Mount[T]) Current() *T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// State returns the lifecycle state.
func (m *Mount[T]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Settled is closed once the mount reaches a terminal state.
func (m *Mount[T]) Settled() <-chan struct{} {
	return m.settled
}

// Wait blocks until the mount settles or ctx is done and reports whether it
// settled.
func (m *Mount[T]) Wait(ctx context.Context) bool {
	select {
	case <-m.settled:
		return true
	case <-ctx.Done():
		return false
	}
}

// Unmount ends the lifecycle. A fetch that completes afterwards leaves the
// mount untouched.
func (m *Mount[T]) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live = false
}

// Live reports whether the mount has not been unmounted.
func (m *Mount[T]) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

func (m *Mount[T]) fetch(ctx context.Context, f Fetcher) {
	body, err := f.Fetch(ctx, m.endpoint)
	var next *T
	if err == nil {
		next, err = Decode[T](body)
	}
	m.resolve(next, err)
}

func (m *Mount[T]) resolve(next *T, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer close(m.settled)

	if !m.live {
		slog.Debug("content fetch finished after unmount, discarded",
			"section", m.key, "endpoint", m.endpoint)
		return
	}
	if err != nil {
		if errors.Is(err, ErrEmptyDocument) {
			slog.Debug("content endpoint returned no document, keeping default",
				"section", m.key, "endpoint", m.endpoint)
		} else {
			slog.Warn("content unavailable, keeping default",
				"section", m.key, "endpoint", m.endpoint, "error", err)
		}
		m.state = StateDefaultRetained
		return
	}
	m.current = next
	m.state = StateRemote
}
