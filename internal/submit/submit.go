// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package submit delivers inquiry forms to two sinks in sequence: the email
// relay first, then the internal persistence API. The relay is the one that
// matters; the second write is best effort and its failure only downgrades
// the outcome to a partial success.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Sentinel errors for the submission taxonomy.
var (
	ErrVerificationMissing = errors.New("human verification required")
	ErrPrimaryFailed       = errors.New("primary submission failed")
	ErrSecondaryFailed     = errors.New("secondary submission failed")
)

// Kind names the form being submitted.
type Kind string

const (
	KindContact    Kind = "contact"
	KindInvestment Kind = "investment"
)

// Subject is the email subject line for the form.
func (k Kind) Subject() string {
	switch k {
	case KindInvestment:
		return "New investment inquiry"
	default:
		return "New contact inquiry"
	}
}

// Fields are the values the visitor typed.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// Trimmed returns the fields with surrounding whitespace removed.
func (f Fields) Trimmed() Fields {
	return Fields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Message: strings.TrimSpace(f.Message),
	}
}

// Form is one submission attempt.
type Form struct {
	Kind     Kind
	Fields   Fields
	Token    string // human-verification token from the widget
	RemoteIP string
}

// Verifier checks a human-verification token. Failures wrap
// ErrVerificationMissing.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Sink receives a submitted form.
type Sink interface {
	Send(ctx context.Context, kind Kind, fields Fields) error
}

// State is a step of the submission state machine.
type State int

const (
	StateIdle State = iota
	StateVerifying
	StateSubmittingPrimary
	StateSubmittingSecondary
	StateSuccess
	StatePartialSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateVerifying:
		return "verifying"
	case StateSubmittingPrimary:
		return "submitting-primary"
	case StateSubmittingSecondary:
		return "submitting-secondary"
	case StateSuccess:
		return "success"
	case StatePartialSuccess:
		return "partial-success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of Submit.
type Outcome struct {
	State State
	Err   error // nil on success
	// Fields are the values the form should show next. They are empty after
	// a success and keep what the visitor typed otherwise.
	Fields Fields
}

// Level is the notification style for the outcome.
func (o Outcome) Level() string {
	switch o.State {
	case StateSuccess:
		return "success"
	case StatePartialSuccess:
		return "warning"
	default:
		return "error"
	}
}

// Message is the visitor-facing notification text.
func (o Outcome) Message() string {
	switch {
	case o.State == StateSuccess:
		return "Thank you! Your inquiry has been sent. We will get back to you shortly."
	case o.State == StatePartialSuccess:
		return "Your inquiry was submitted, but it could not be saved to the admin panel."
	case errors.Is(o.Err, ErrVerificationMissing):
		return "Please complete the verification before submitting."
	default:
		return "We could not submit your inquiry. Please try again."
	}
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithObserver registers a callback invoked on every state transition.
func WithObserver(f func(State)) Option {
	return func(s *Submitter) { s.observe = f }
}

// Submitter runs the dual-sink submission.
type Submitter struct {
	verifier  Verifier
	primary   Sink
	secondary Sink
	observe   func(State)
}

// New creates a Submitter.
func New(v Verifier, primary, secondary Sink, opts ...Option) *Submitter {
	s := &Submitter{verifier: v, primary: primary, secondary: secondary}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit verifies the token, sends to the primary sink and, only once that
// succeeded, to the secondary sink. It never returns without a terminal
// state. The secondary call is never started before the primary resolved.
func (s *Submitter) Submit(ctx context.Context, form Form) Outcome {
	fields := form.Fields.Trimmed()
	log := slog.With("form", string(form.Kind))

	s.transition(StateVerifying)
	if strings.TrimSpace(form.Token) == "" {
		return s.fail(log, fields, fmt.Errorf("%w: no token", ErrVerificationMissing))
	}
	if err := s.verifier.Verify(ctx, form.Token, form.RemoteIP); err != nil {
		if !errors.Is(err, ErrVerificationMissing) {
			err = fmt.Errorf("%w: %v", ErrVerificationMissing, err)
		}
		return s.fail(log, fields, err)
	}

	s.transition(StateSubmittingPrimary)
	if err := s.primary.Send(ctx, form.Kind, fields); err != nil {
		return s.fail(log, fields, fmt.Errorf("%w: %v", ErrPrimaryFailed, err))
	}

	s.transition(StateSubmittingSecondary)
	if err := s.secondary.Send(ctx, form.Kind, fields); err != nil {
		err = fmt.Errorf("%w: %v", ErrSecondaryFailed, err)
		log.Warn("inquiry sent but not stored", "error", err)
		s.transition(StatePartialSuccess)
		return Outcome{State: StatePartialSuccess, Err: err, Fields: fields}
	}

	log.Info("inquiry submitted")
	s.transition(StateSuccess)
	return Outcome{State: StateSuccess}
}

func (s *Submitter) fail(log *slog.Logger, fields Fields, err error) Outcome {
	if errors.Is(err, ErrVerificationMissing) {
		log.Info("inquiry rejected", "error", err)
	} else {
		log.Warn("inquiry failed", "error", err)
	}
	s.transition(StateFailure)
	return Outcome{State: StateFailure, Err: err, Fields: fields}
}

func (s *Submitter) transition(st State) {
	if s.observe != nil {
		s.observe(st)
	}
}
