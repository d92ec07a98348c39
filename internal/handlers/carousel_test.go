// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/goleak"

	"dholerasite/internal/carousel"
	"dholerasite/internal/provider"
	"dholerasite/internal/sections"
)

// manualTicker fires only when the test sends on c.
type manualTicker struct{ c chan time.Time }

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               {}

type sseEvent struct {
	name  string
	state streamState
}

// streamClient reads events from one open stream.
type streamClient struct {
	t    *testing.T
	resp *http.Response
	rd   *bufio.Reader
}

func (sc *streamClient) next() sseEvent {
	sc.t.Helper()
	var ev sseEvent
	for {
		line, err := sc.rd.ReadString('\n')
		if err != nil {
			sc.t.Fatalf("read stream: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev.state); err != nil {
				sc.t.Fatalf("decode event data %q: %v", line, err)
			}
		}
	}
}

type carouselHarness struct {
	c      *Carousel
	ticker *manualTicker
	srv    *httptest.Server
}

func newCarouselHarness(t *testing.T, f provider.Fetcher) *carouselHarness {
	t.Helper()
	h := &carouselHarness{
		c:      NewCarousel(sections.NewSet(f), time.Hour),
		ticker: &manualTicker{c: make(chan time.Time)},
	}
	h.c.newTicker = func(time.Duration) carousel.Ticker { return h.ticker }

	r := chi.NewRouter()
	r.Get("/carousel/{section}/stream", h.c.Stream)
	r.Post("/carousel/{section}/stream/{id}/select", h.c.Select)
	h.srv = httptest.NewServer(r)
	t.Cleanup(h.srv.Close)
	return h
}

func (h *carouselHarness) open(t *testing.T, section string) *streamClient {
	t.Helper()
	return h.openQuery(t, section, "")
}

func (h *carouselHarness) openQuery(t *testing.T, section, query string) *streamClient {
	t.Helper()
	resp, err := h.srv.Client().Get(h.srv.URL + "/carousel/" + section + "/stream" + query)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("stream status: got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content-type: got %q", ct)
	}
	return &streamClient{t: t, resp: resp, rd: bufio.NewReader(resp.Body)}
}

func (h *carouselHarness) selectIndex(t *testing.T, section, id, index string) int {
	t.Helper()
	resp, err := h.srv.Client().PostForm(h.srv.URL+"/carousel/"+section+"/stream/"+id+"/select", url.Values{"index": {index}})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func (h *carouselHarness) waitIdle(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.c.active() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream still registered after the client left")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCarouselStreamAutoplayAndSelect(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h := newCarouselHarness(t, nil)
	n := len(sections.DefaultCarousel().Slides)
	if n < 3 {
		t.Fatalf("default carousel needs at least 3 slides, has %d", n)
	}

	sc := h.open(t, "carousel")
	ready := sc.next()
	if ready.name != "ready" || ready.state.ID == "" || ready.state.Index != 0 || ready.state.Count != n {
		t.Fatalf("ready event: %+v", ready)
	}

	h.ticker.c <- time.Now()
	if ev := sc.next(); ev.name != "index" || ev.state.Index != 1 {
		t.Fatalf("after tick: %+v", ev)
	}

	if code := h.selectIndex(t, "carousel", ready.state.ID, "0"); code != http.StatusNoContent {
		t.Fatalf("select status: got %d", code)
	}
	if ev := sc.next(); ev.state.Index != 0 {
		t.Fatalf("after select: %+v", ev)
	}

	// Selection left the timer alone: the next tick advances from the
	// selected slide.
	h.ticker.c <- time.Now()
	if ev := sc.next(); ev.state.Index != 1 {
		t.Fatalf("tick after select: %+v", ev)
	}

	// Out of range: ignored, no event, index kept.
	if code := h.selectIndex(t, "carousel", ready.state.ID, "99"); code != http.StatusNoContent {
		t.Errorf("out-of-range select status: got %d", code)
	}
	h.ticker.c <- time.Now()
	if ev := sc.next(); ev.state.Index != 2 {
		t.Fatalf("tick after ignored select: %+v", ev)
	}

	sc.resp.Body.Close()
	h.waitIdle(t)
	h.srv.Close()
	h.srv.Client().CloseIdleConnections()
}

func TestCarouselStreamPlaysRenderedSlides(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	// The page rendered five remote slides.
	page := newSite(t, &routeFetcher{bodies: map[string]string{
		sections.EndpointCarousel: `{"slides":[{"title":{"tag":"h2","text":"S1"}},{"title":{"tag":"h2","text":"S2"}},{"title":{"tag":"h2","text":"S3"}},{"title":{"tag":"h2","text":"S4"}},{"title":{"tag":"h2","text":"S5"}}]}`,
	}}, time.Second)
	body := get(t, page.site.Home, "/").Body.String()
	if !strings.Contains(body, `data-carousel="/carousel/carousel/stream" data-count="5"`) {
		t.Fatal("home page should announce its five slides")
	}
	if n := len(sections.DefaultCarousel().Slides); n == 5 {
		t.Fatalf("default carousel must not have five slides for this test")
	}

	// By the time the stream opens the backend is down.
	f := &routeFetcher{}
	h := newCarouselHarness(t, f)
	sc := h.openQuery(t, "carousel", "?n=5")

	ready := sc.next()
	if ready.name != "ready" || ready.state.Count != 5 {
		t.Fatalf("ready event: %+v", ready)
	}
	if code := h.selectIndex(t, "carousel", ready.state.ID, "4"); code != http.StatusNoContent {
		t.Fatalf("select status: got %d", code)
	}
	if ev := sc.next(); ev.state.Index != 4 {
		t.Fatalf("after select: %+v", ev)
	}
	h.ticker.c <- time.Now()
	if ev := sc.next(); ev.state.Index != 0 || ev.state.Count != 5 {
		t.Fatalf("tick should wrap over five slides: %+v", ev)
	}
	if got := f.calls.Load(); got != 0 {
		t.Errorf("stream fetched the section %d times", got)
	}

	sc.resp.Body.Close()
	h.waitIdle(t)
	h.srv.Close()
	h.srv.Client().CloseIdleConnections()
}

func TestCarouselStreamDefaultCount(t *testing.T) {
	f := &routeFetcher{}
	h := newCarouselHarness(t, f)

	sc := h.open(t, "reviews")
	defer sc.resp.Body.Close()

	want := len(sections.DefaultReviews().Reviews)
	if ev := sc.next(); ev.name != "ready" || ev.state.Count != want {
		t.Fatalf("ready event: %+v, want count %d", ev, want)
	}
	if got := f.calls.Load(); got != 0 {
		t.Errorf("stream fetched the section %d times", got)
	}
}

func TestCarouselStreamBadCount(t *testing.T) {
	h := newCarouselHarness(t, nil)
	for _, q := range []string{"?n=abc", "?n=-1", "?n=101"} {
		resp, err := h.srv.Client().Get(h.srv.URL + "/carousel/carousel/stream" + q)
		if err != nil {
			t.Fatalf("get %s: %v", q, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", q, resp.StatusCode)
		}
	}
	if h.c.active() != 0 {
		t.Error("rejected streams must not register")
	}
}

func TestSlideCount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 4, false},
		{"0", 0, false},
		{"7", 7, false},
		{"100", 100, false},
		{"101", 0, true},
		{"-2", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		got, err := slideCount(tt.raw, 4)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("slideCount(%q) = %d, %v", tt.raw, got, err)
		}
	}
}

func TestCarouselStreamUnknownSection(t *testing.T) {
	h := newCarouselHarness(t, nil)
	resp, err := h.srv.Client().Get(h.srv.URL + "/carousel/gallery/stream")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestCarouselSelectErrors(t *testing.T) {
	h := newCarouselHarness(t, nil)
	engine := carousel.New[int](time.Hour)
	defer engine.Stop()
	engine.SetSlides([]int{1, 2, 3})
	id := h.c.register("carousel", engine).String()

	tests := []struct {
		name    string
		section string
		id      string
		index   string
		want    int
	}{
		{"unknown id", "carousel", "9b2f7c1e-0000-4000-8000-000000000000", "1", http.StatusNotFound},
		{"malformed id", "carousel", "nope", "1", http.StatusNotFound},
		{"other section", "reviews", id, "1", http.StatusNotFound},
		{"bad index", "carousel", id, "two", http.StatusBadRequest},
		{"ok", "carousel", id, "2", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.selectIndex(t, tt.section, tt.id, tt.index); got != tt.want {
				t.Errorf("status: got %d, want %d", got, tt.want)
			}
		})
	}
	if engine.Index() != 2 {
		t.Errorf("index: got %d, want 2", engine.Index())
	}
}
