// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// site. Pages and forms share the CSRF-protected group; the inquiry API is
// called server to server and sits outside it.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dholerasite/internal/handlers"
	"dholerasite/internal/middleware"
	"dholerasite/internal/submit"
	"dholerasite/web"
)

// Handlers are the handler groups the router mounts. Inquiries is nil when
// no database is configured.
type Handlers struct {
	Site      *handlers.Site
	Carousel  *handlers.Carousel
	Downloads *handlers.Downloads
	Inquiries *handlers.Inquiries
}

// Limits are the per-visitor budgets. Forms counts site form submissions
// only; carousel selects and page views never spend it. API counts calls to
// the inquiry API. A nil limiter leaves its routes unlimited.
type Limits struct {
	Forms *middleware.RateLimiter
	API   *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers, limits Limits, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(secureCookies))

	// Health check: no CSRF.
	r.Get("/health", healthHandler)

	// Embedded stylesheet, script and images.
	static, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	// Inquiry API: JSON, rate limited, no CSRF.
	if h.Inquiries != nil {
		r.Group(func(r chi.Router) {
			if limits.API != nil {
				r.Use(limits.API.Middleware)
			}
			r.Post("/api/contact-queries/submit", h.Inquiries.Contact)
			r.Post("/api/investment/submit", h.Inquiries.Investment)
		})
	}

	// Site pages and forms.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))

		form := func(kind submit.Kind, path string) chi.Router {
			if limits.Forms == nil {
				return r
			}
			return r.With(limits.Forms.Limit(h.Site.Throttled(kind, path)))
		}

		r.Get("/", h.Site.Home)
		form(submit.KindContact, "/").Post("/", h.Site.SubmitContact("/"))
		r.Get("/about", h.Site.About)
		r.Get("/dholera-sir", h.Site.DholeraSIR)
		r.Get("/investment", h.Site.Investment)
		form(submit.KindInvestment, "/investment").Post("/investment", h.Site.SubmitInvestment("/investment"))
		r.Get("/pricing", h.Site.Pricing)
		r.Get("/gallery", h.Site.Gallery)
		r.Get("/contact", h.Site.Contact)
		form(submit.KindContact, "/contact").Post("/contact", h.Site.SubmitContact("/contact"))

		r.Route("/carousel/{section}/stream", func(r chi.Router) {
			r.Get("/", h.Carousel.Stream)
			r.Post("/{id}/select", h.Carousel.Select)
		})

		if h.Downloads != nil {
			r.Get("/downloads/*", h.Downloads.Serve)
		}
	})

	r.NotFound(h.Site.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
