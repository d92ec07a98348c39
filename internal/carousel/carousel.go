// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package carousel implements slide autoplay: a zero-based index that
// advances modulo the slide count on a fixed period. The engine owns its
// ticker and releases it on Stop.
package carousel

import (
	"sync"
	"time"
)

// DefaultPeriod is the autoplay interval.
const DefaultPeriod = 3 * time.Second

// Ticker is the part of *time.Ticker the engine uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker returns a Ticker backed by time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	newTicker func(time.Duration) Ticker
	onChange  func(index int)
}

// WithTicker replaces the ticker constructor.
func WithTicker(f func(time.Duration) Ticker) Option {
	return func(o *options) { o.newTicker = f }
}

// WithOnChange registers a callback run after every index change, from the
// engine's goroutine for ticks and from the caller's for Select. It is
// called without the engine lock held and must not block.
func WithOnChange(f func(index int)) Option {
	return func(o *options) { o.onChange = f }
}

// Engine cycles through slides of type T.
type Engine[T any] struct {
	period    time.Duration
	newTicker func(time.Duration) Ticker
	onChange  func(int)

	mu      sync.Mutex
	slides  []T
	index   int
	cancel  chan struct{} // closes the running loop; nil when none
	stopped bool

	loops sync.WaitGroup
}

// New creates an idle engine. A non-positive period uses DefaultPeriod.
func New[T any](period time.Duration, opts ...Option) *Engine[T] {
	if period <= 0 {
		period = DefaultPeriod
	}
	o := options{newTicker: NewTicker}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T]{
		period:    period,
		newTicker: o.newTicker,
		onChange:  o.onChange,
	}
}

// SetSlides installs a slide list. Passing the same list again (same
// backing array and length) changes nothing. A different list cancels the
// running timer before a new one is scheduled; the index is kept as is and
// wraps on the next tick. An empty list leaves no timer running.
func (e *Engine[T]) SetSlides(slides []T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sameList(e.slides, slides) {
		return
	}
	e.stopLocked()
	e.slides = slides
	if e.stopped || len(slides) == 0 {
		return
	}

	cancel := make(chan struct{})
	e.cancel = cancel
	t := e.newTicker(e.period)
	e.loops.Add(1)
	go e.run(t, cancel)
}

// Select jumps to slide i. The autoplay timer is left alone, so the next
// tick still fires at its scheduled time. Out-of-range indexes are ignored.
func (e *Engine[T]) Select(i int) bool {
	e.mu.Lock()
	if i < 0 || i >= len(e.slides) {
		e.mu.Unlock()
		return false
	}
	e.index = i
	e.mu.Unlock()

	e.notify(i)
	return true
}

// Index returns the current index. After a list replacement it may exceed
// the new length until the next tick.
func (e *Engine[T]) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Len returns the number of slides.
func (e *Engine[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.slides)
}

// Current returns the slide at the index, or false when the index is out
// of range of the current list.
func (e *Engine[T]) Current() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var zero T
	if e.index < 0 || e.index >= len(e.slides) {
		return zero, false
	}
	return e.slides[e.index], true
}

// Running reports whether an autoplay timer is scheduled.
func (e *Engine[T]) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancel != nil
}

// Stop cancels the timer and waits for the engine's goroutines to exit.
// It is safe to call more than once; later SetSlides calls start nothing.
func (e *Engine[T]) Stop() {
	e.mu.Lock()
	e.stopped = true
	e.stopLocked()
	e.mu.Unlock()

	e.loops.Wait()
}

func (e *Engine[T]) stopLocked() {
	if e.cancel != nil {
		close(e.cancel)
		e.cancel = nil
	}
}

func (e *Engine[T]) run(t Ticker, cancel <-chan struct{}) {
	defer e.loops.Done()
	defer t.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-t.C():
			if !e.advance(cancel) {
				return
			}
		}
	}
}

// advance moves to the next slide unless this loop was cancelled while the
// tick was pending.
func (e *Engine[T]) advance(cancel <-chan struct{}) bool {
	e.mu.Lock()
	select {
	case <-cancel:
		e.mu.Unlock()
		return false
	default:
	}
	n := len(e.slides)
	if n == 0 {
		e.mu.Unlock()
		return true
	}
	e.index = (e.index + 1) % n
	i := e.index
	e.mu.Unlock()

	e.notify(i)
	return true
}

func (e *Engine[T]) notify(i int) {
	if e.onChange != nil {
		e.onChange(i)
	}
}

// sameList reports whether a and b are the same list: identical length and
// backing array. Two empty lists are the same.
func sameList[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
