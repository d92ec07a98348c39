// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler tests.
// Every backend is faked; no test needs the network.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dholerasite/internal/flash"
	"dholerasite/internal/provider"
	"dholerasite/internal/render"
	"dholerasite/internal/sections"
	"dholerasite/internal/submit"
)

// routeFetcher answers fetches by endpoint; unknown endpoints fail like a
// 500 from the content backend. A non-nil release channel holds every
// fetch until it is closed.
type routeFetcher struct {
	bodies  map[string]string
	release chan struct{}
	calls   atomic.Int32
}

func (f *routeFetcher) Fetch(_ context.Context, endpoint string) ([]byte, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	body, ok := f.bodies[endpoint]
	if !ok {
		return nil, fmt.Errorf("%w: %s returned status 500", provider.ErrContentUnavailable, endpoint)
	}
	return []byte(body), nil
}

// errSinkDown is what a failing sink returns.
var errSinkDown = errors.New("sink down")

// stubVerifier accepts every token.
type stubVerifier struct{}

func (stubVerifier) Verify(context.Context, string, string) error { return nil }

// recordingSink records what it was sent, and the state of the context it
// was sent on, and fails when err is set. onSend runs before recording.
type recordingSink struct {
	mu      sync.Mutex
	err     error
	onSend  func()
	sent    []submit.Fields
	ctxErrs []error
}

func (s *recordingSink) Send(ctx context.Context, _ submit.Kind, f submit.Fields) error {
	if s.onSend != nil {
		s.onSend()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, f)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type siteHarness struct {
	site      *Site
	primary   *recordingSink
	secondary *recordingSink
}

// newSite builds a Site over the fetcher with in-memory flashes and
// recording sinks. A nil fetcher keeps every section on its default.
func newSite(t *testing.T, f provider.Fetcher, budget time.Duration) *siteHarness {
	t.Helper()
	rn, err := render.New(nil)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	h := &siteHarness{primary: &recordingSink{}, secondary: &recordingSink{}}
	sub := submit.New(stubVerifier{}, h.primary, h.secondary)
	h.site = NewSite(sections.NewSet(f), rn, flash.NewStore(flash.NewMemory(), false), sub, "site-key", budget)
	return h
}

// get runs a page handler and returns the recorder.
func get(t *testing.T, h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}
