// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the site: the section pages, the inquiry forms,
// the carousel streams, brochure downloads and the inquiry API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"dholerasite/internal/content"
	"dholerasite/internal/flash"
	"dholerasite/internal/middleware"
	"dholerasite/internal/render"
	"dholerasite/internal/sections"
	"dholerasite/internal/submit"
)

// DefaultRenderBudget is how long a page waits for its sections before it
// renders what it has.
const DefaultRenderBudget = 800 * time.Millisecond

// formAnchor is the fragment the post-submit redirect scrolls to.
const formAnchor = "#contact"

// Site groups the page and form handlers.
type Site struct {
	sections  *sections.Set
	renderer  *render.Renderer
	flash     *flash.Store
	submitter *submit.Submitter
	siteKey   string
	budget    time.Duration
}

// NewSite creates the page handlers. siteKey is the verification widget key;
// when empty the widget is not rendered.
func NewSite(set *sections.Set, renderer *render.Renderer, flashStore *flash.Store, submitter *submit.Submitter, siteKey string, budget time.Duration) *Site {
	if budget <= 0 {
		budget = DefaultRenderBudget
	}
	return &Site{
		sections:  set,
		renderer:  renderer,
		flash:     flashStore,
		submitter: submitter,
		siteKey:   siteKey,
		budget:    budget,
	}
}

// Home renders the landing page.
func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	pm := newPageMount(r.Context())
	defer pm.unmount()

	chrome := mountSection(pm, s.sections.Chrome)
	carousel := mountSection(pm, s.sections.Carousel)
	about := mountSection(pm, s.sections.About)
	features := mountSection(pm, s.sections.Features)
	featured := mountSection(pm, s.sections.FeaturedInvestment)
	process := mountSection(pm, s.sections.Process)
	reviews := mountSection(pm, s.sections.Reviews)
	contact := mountSection(pm, s.sections.ContactSection)
	pm.settle(s.budget)

	data := &render.PageData{
		Title:  "Dholera Smart City Plots",
		Chrome: chrome.Current(),
		Sections: render.Sections{
			Carousel:           carousel.Current(),
			About:              about.Current(),
			Features:           features.Current(),
			FeaturedInvestment: featured.Current(),
			Process:            process.Current(),
			Reviews:            reviews.Current(),
			ContactSection:     contact.Current(),
		},
	}
	data.Description = render.Description(data.Sections.About.Lead(), data.Sections.FeaturedInvestment.Description)
	s.attachForm(w, r, data, submit.KindContact, data.Sections.ContactSection.Form, true)
	s.renderer.Page(w, r, "home", data)
}

// About renders the company page.
func (s *Site) About(w http.ResponseWriter, r *http.Request) {
	pm := newPageMount(r.Context())
	defer pm.unmount()

	chrome := mountSection(pm, s.sections.Chrome)
	about := mountSection(pm, s.sections.About)
	team := mountSection(pm, s.sections.Team)
	process := mountSection(pm, s.sections.Process)
	pm.settle(s.budget)

	data := &render.PageData{
		Title:  "About us",
		Chrome: chrome.Current(),
		Sections: render.Sections{
			About:   about.Current(),
			Team:    team.Current(),
			Process: process.Current(),
		},
	}
	data.Description = render.Description(data.Sections.About.Lead(), data.Sections.Team.Intro)
	s.renderer.Page(w, r, "about", data)
}

// DholeraSIR renders the region page.
func (s *Site) DholeraSIR(w http.ResponseWriter, r *http.Request) {
	pm := newPageMount(r.Context())
	defer pm.unmount()

	chrome := mountSection(pm, s.sections.Chrome)
	sir := mountSection(pm, s.sections.DholeraSIR)
	connectivity := mountSection(pm, s.sections.Connectivity)
	planning := mountSection(pm, s.sections.Planning)
	pm.settle(s.budget)

	data := &render.PageData{
		Title:  "Dholera SIR",
		Chrome: chrome.Current(),
		Sections: render.Sections{
			DholeraSIR:   sir.Current(),
			Connectivity: connectivity.Current(),
			Planning:     planning.Current(),
		},
	}
	data.Description = render.Description(data.Sections.DholeraSIR.Lead(), data.Sections.Connectivity.Description)
	s.renderer.Page(w, r, "dholera_sir", data)
}

// Investment renders the projects page with the investment form.
func (s *Site) Investment(w http.ResponseWriter, r *http.Request) {
	pm := newPageMount(r.Context())
	defer pm.unmount()

	chrome := mountSection(pm, s.sections.Chrome)
	opportunities := mountSection(pm, s.sections.Opportunities)
	featured := mountSection(pm, s.sections.FeaturedInvestment)
	contact := mountSection(pm, s.sections.ContactSection)
	pm.settle(s.budget)

	data := &render.PageData{
		Title:  "Investment opportunities",
		Chrome: chrome.Current(),
		Sections: render.Sections{
			Opportunities:      opportunities.Current(),
			FeaturedInvestment: featured.Current(),
			ContactSection:     contact.Current(),
		},
	}
	data.Description = render.Description(data.Sections.Opportunities.Lead(), data.Sections.FeaturedInvestment.Description)
	s.attachForm(w, r, data, submit.KindInvestment, data.Sections.ContactSection.Form, false)
	s.renderer.Page(w, r, "investment", data)
}

// Pricing renders the price page.
func (s *Site) Pricing(w http.ResponseWriter, r *http.Request) {
	pm := newPageMount(r.Context())
	defer pm.unmount()

	chrome := mountSection(pm, s.sections.Chrome)
	pricing := mountSection(pm, s.sections.Pricing)
	pm.settle(s.budget)

	data := &render.PageData{
		Title:    "Pricing",
		Chrome:   chrome.Current(),
		Sections: render.Sections{Pricing: pricing.Current()},
	}
	data.Description = render.Description(data.Sections.Pricing.Lead(), data.Sections.Pricing.Note)
	s.renderer.Page(w, r, "pricing", data)
}

// Gallery renders the picture page.
func (s *Site) Gallery(w http.ResponseWriter, r *http.Request) {
	pm := newPageMount(r.Context())
	defer pm.unmount()

	chrome := mountSection(pm, s.sections.Chrome)
	gallery := mountSection(pm, s.sections.Gallery)
	pm.settle(s.budget)

	data := &render.PageData{
		Title:    "Gallery",
		Chrome:   chrome.Current(),
		Sections: render.Sections{Gallery: gallery.Current()},
	}
	data.Description = render.Description(data.Sections.Gallery.Lead())
	s.renderer.Page(w, r, "gallery", data)
}

// Contact renders the contact page with the contact form.
func (s *Site) Contact(w http.ResponseWriter, r *http.Request) {
	pm := newPageMount(r.Context())
	defer pm.unmount()

	chrome := mountSection(pm, s.sections.Chrome)
	contact := mountSection(pm, s.sections.Contact)
	pm.settle(s.budget)

	data := &render.PageData{
		Title:    "Contact us",
		Chrome:   chrome.Current(),
		Sections: render.Sections{Contact: contact.Current()},
	}
	data.Description = render.Description(data.Sections.Contact.Lead())
	s.attachForm(w, r, data, submit.KindContact, data.Sections.Contact.Form, true)
	s.renderer.Page(w, r, "contact", data)
}

// NotFound renders the 404 page inside the site chrome.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	pm := newPageMount(r.Context())
	defer pm.unmount()

	chrome := mountSection(pm, s.sections.Chrome)
	pm.settle(s.budget)

	s.renderer.PageStatus(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title:  "Page not found",
		Chrome: chrome.Current(),
	})
}

// SubmitContact handles the contact form posted from path.
func (s *Site) SubmitContact(path string) http.HandlerFunc {
	return s.submitForm(submit.KindContact, path)
}

// SubmitInvestment handles the investment form posted from path.
func (s *Site) SubmitInvestment(path string) http.HandlerFunc {
	return s.submitForm(submit.KindInvestment, path)
}

// submitForm runs the submission, stores its outcome as a flash and
// redirects back to the page the form lives on.
func (s *Site) submitForm(kind submit.Kind, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		fields := postedFields(r, kind)

		// A visitor leaving mid-submission must not cut the second write
		// short once the first one went through. Sink timeouts bound it.
		ctx := context.WithoutCancel(r.Context())
		outcome := s.submitter.Submit(ctx, submit.Form{
			Kind:     kind,
			Fields:   fields,
			Token:    submit.TokenFromForm(r.PostForm),
			RemoteIP: middleware.ClientIP(r),
		})

		err := s.flash.Set(ctx, w, &flash.Data{
			Path:    path,
			Level:   outcome.Level(),
			Message: outcome.Message(),
			Fields:  outcome.Fields,
		})
		if err != nil {
			slog.Error("store form outcome failed", "form", string(kind), "error", err)
		}

		http.Redirect(w, r, path+formAnchor, http.StatusSeeOther)
	}
}

// Throttled answers a form post from path that went over the submission
// budget. The visitor lands back on the form with their input kept.
func (s *Site) Throttled(kind submit.Kind, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields submit.Fields
		if err := r.ParseForm(); err == nil {
			fields = postedFields(r, kind)
		}
		slog.Info("form submission throttled", "form", string(kind), "ip", middleware.ClientIP(r))

		err := s.flash.Set(r.Context(), w, &flash.Data{
			Path:    path,
			Level:   "error",
			Message: throttledMessage,
			Fields:  fields,
		})
		if err != nil {
			slog.Error("store form outcome failed", "form", string(kind), "error", err)
		}
		http.Redirect(w, r, path+formAnchor, http.StatusSeeOther)
	}
}

const throttledMessage = "Too many submissions from your connection. Please wait a minute and try again."

func postedFields(r *http.Request, kind submit.Kind) submit.Fields {
	fields := submit.Fields{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Phone: r.PostFormValue("phone"),
	}
	if kind == submit.KindContact {
		fields.Message = r.PostFormValue("message")
	}
	return fields
}

// attachForm adds the inquiry form to the page, together with the outcome
// of a submission redirected here.
func (s *Site) attachForm(w http.ResponseWriter, r *http.Request, data *render.PageData, kind submit.Kind, labels content.FormLabels, withMessage bool) {
	data.Form = &render.FormView{
		Kind:           string(kind),
		Action:         r.URL.Path,
		Labels:         labels,
		CaptchaSiteKey: s.siteKey,
		WithMessage:    withMessage,
	}

	fd, err := s.flash.Pop(r.Context(), w, r)
	if err != nil {
		slog.Warn("read form outcome failed", "error", err)
		return
	}
	if fd == nil {
		return
	}
	data.Flash = &render.Flash{Type: fd.Level, Message: fd.Message}
	data.Form.Values = render.FormValues{
		Name:    fd.Fields.Name,
		Email:   fd.Fields.Email,
		Phone:   fd.Fields.Phone,
		Message: fd.Fields.Message,
	}
}
