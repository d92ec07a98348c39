// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"dholerasite/internal/carousel"
	"dholerasite/internal/sections"
)

// keepAliveInterval spaces the comment lines that keep idle streams open
// through proxies.
const keepAliveInterval = 15 * time.Second

// selector is the part of a running engine the select endpoint drives.
type selector interface {
	Select(i int) bool
}

type streamEntry struct {
	section string
	engine  selector
}

// Carousel serves the autoplay streams and their manual selection.
type Carousel struct {
	sections  *sections.Set
	period    time.Duration
	newTicker func(time.Duration) carousel.Ticker

	mu      sync.Mutex
	streams map[uuid.UUID]streamEntry
}

// NewCarousel creates the carousel handlers. A non-positive period uses
// carousel.DefaultPeriod.
func NewCarousel(set *sections.Set, period time.Duration) *Carousel {
	return &Carousel{
		sections: set,
		period:   period,
		streams:  make(map[uuid.UUID]streamEntry),
	}
}

// streamState is the payload of every stream event.
type streamState struct {
	ID    string `json:"id,omitempty"`
	Index int    `json:"index"`
	Count int    `json:"count"`
}

// maxSlides bounds the slide count a stream accepts from the page.
const maxSlides = 100

// Stream runs one carousel for the lifetime of the request and pushes its
// index as server-sent events. The page passes the number of slides it
// rendered as ?n=, so the stream plays exactly those and never fetches the
// section itself. Without n the section's bundled slide count is used.
func (c *Carousel) Stream(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	var fallback int
	switch section {
	case "carousel":
		fallback = len(c.sections.Carousel.Default().Slides)
	case "reviews":
		fallback = len(c.sections.Reviews.Default().Reviews)
	default:
		http.NotFound(w, r)
		return
	}

	count, err := slideCount(r.URL.Query().Get("n"), fallback)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.serveStream(w, r, section, count)
}

// slideCount parses the rendered slide count.
func slideCount(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxSlides {
		return 0, fmt.Errorf("n must be an integer between 0 and %d", maxSlides)
	}
	return n, nil
}

// Select moves a running carousel to the posted index. The autoplay timer
// keeps its schedule; an index outside the slide list is ignored.
func (c *Carousel) Select(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	c.mu.Lock()
	entry, ok := c.streams[id]
	c.mu.Unlock()
	if !ok || entry.section != chi.URLParam(r, "section") {
		http.NotFound(w, r)
		return
	}

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}
	if !entry.engine.Select(index) {
		slog.Debug("carousel select out of range ignored", "section", entry.section, "index", index)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Carousel) register(section string, s selector) uuid.UUID {
	id := uuid.New()
	c.mu.Lock()
	c.streams[id] = streamEntry{section: section, engine: s}
	c.mu.Unlock()
	return id
}

func (c *Carousel) unregister(id uuid.UUID) {
	c.mu.Lock()
	delete(c.streams, id)
	c.mu.Unlock()
}

// active returns the number of open streams.
func (c *Carousel) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.streams)
}

// serveStream plays count slides until the client goes away.
func (c *Carousel) serveStream(w http.ResponseWriter, r *http.Request, section string, count int) {
	changed := make(chan struct{}, 1)
	opts := []carousel.Option{carousel.WithOnChange(func(int) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})}
	if c.newTicker != nil {
		opts = append(opts, carousel.WithTicker(c.newTicker))
	}
	// The browser holds the slides; the engine only needs their positions.
	engine := carousel.New[int](c.period, opts...)
	defer engine.Stop()
	positions := make([]int, count)
	for i := range positions {
		positions[i] = i
	}
	engine.SetSlides(positions)

	id := c.register(section, engine)
	defer c.unregister(id)

	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout.
	rc.SetWriteDeadline(time.Time{})
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "ready", streamState{ID: id.String(), Index: engine.Index(), Count: engine.Len()}); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		slog.Warn("carousel stream cannot flush", "section", section, "error", err)
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		var err error
		select {
		case <-r.Context().Done():
			return
		case <-changed:
			err = writeEvent(w, "index", streamState{Index: engine.Index(), Count: engine.Len()})
		case <-keepAlive.C:
			_, err = io.WriteString(w, ": keep-alive\n\n")
		}
		if err == nil {
			err = rc.Flush()
		}
		if err != nil {
			slog.Debug("carousel stream closed", "section", section, "error", err)
			return
		}
	}
}

// writeEvent writes one server-sent event with a JSON payload.
func writeEvent(w io.Writer, event string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
