// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns section trees into HTML. Every text node goes through
// Tag, which applies the tag whitelist and the trusted/escaped decision. Page
// templates compose the section partials; navigation requests made by the
// site script (HX-Request header) receive only the "content" block.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"dholerasite/internal/content"
	"dholerasite/internal/middleware"
	"dholerasite/internal/sections"
	"dholerasite/internal/slug"
)

//go:embed templates
var templateFS embed.FS

// MediaResolver maps a MediaRef URL to the src the browser should load.
type MediaResolver func(url string) string

// PageData holds everything a page template can use.
type PageData struct {
	Title       string        // Page title for <title>
	Description string        // Meta description
	Path        string        // Request path, marks the active nav link
	Chrome      *sections.Chrome
	Sections    Sections
	Form        *FormView     // Inquiry form on the page, if any
	Flash       *Flash        // One-shot submission notice
	CSRFToken   string
	Year        int
}

// Sections carries the tree of every section a page shows. Nil entries are
// not on the page.
type Sections struct {
	Carousel           *sections.Carousel
	About              *sections.About
	Features           *sections.Features
	FeaturedInvestment *sections.FeaturedInvestment
	Opportunities      *sections.Opportunities
	Process            *sections.Process
	Reviews            *sections.Reviews
	Team               *sections.Team
	Connectivity       *sections.Connectivity
	DholeraSIR         *sections.DholeraSIR
	Planning           *sections.Planning
	Gallery            *sections.Gallery
	Pricing            *sections.Pricing
	ContactSection     *sections.ContactSection
	Contact            *sections.Contact
}

// FormView is an inquiry form as rendered: where it posts, its labels, the
// values to show and the verification widget key.
type FormView struct {
	Kind           string
	Action         string
	Labels         content.FormLabels
	Values         FormValues
	CaptchaSiteKey string
	WithMessage    bool
}

// FormValues are the visitor's typed values.
type FormValues struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// Flash is a one-time notification shown above a form.
type Flash struct {
	Type    string `json:"type"` // "success", "warning", "error"
	Message string `json:"message"`
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New parses every page template together with the layout and the partials.
// A nil resolver leaves media URLs as they are.
func New(media MediaResolver) (*Renderer, error) {
	if media == nil {
		media = func(u string) string { return u }
	}
	fixed, err := fixedIDs()
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// text renders a node literally.
			"text": func(n content.TextNode, class string) template.HTML {
				return Node(n, Escaped, class)
			},
			// rich renders a node's text as markup from the content backend.
			"rich": func(n content.TextNode, class string) template.HTML {
				return Node(n, Trusted, class)
			},
			"img": func(m content.MediaRef, describe any, class string) template.HTML {
				return Image(m, media(m.URL), describeText(describe), class)
			},
			"link": Link,
			"plain": func(n content.TextNode) string {
				return PlainText(n.Text)
			},
			// anchors gives each block a fragment id, unique on the page.
			"anchors": func(blocks []sections.Block) []string {
				a := slug.NewAnchors(fixed...)
				ids := make([]string, len(blocks))
				for i, b := range blocks {
					ids[i] = a.ID(PlainText(b.Heading.Text))
				}
				return ids
			},
			"navClass": func(current, target string) string {
				if current == target {
					return "nav-link active"
				}
				return "nav-link"
			},
			"add": func(a, b int) int { return a + b },
			"slideClass": func(i int) string {
				if i == 0 {
					return "slide active"
				}
				return "slide"
			},
		},
	}

	partials, err := fs.Glob(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob partials: %w", err)
	}
	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(page[strings.LastIndexByte(page, '/')+1:], ".html")
		files := append([]string{"templates/layout/base.html"}, partials...)
		files = append(files, page)

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

var literalID = regexp.MustCompile(`\sid="([A-Za-z0-9_-]+)"`)

// fixedIDs collects the element ids written literally in the templates.
// Generated anchors must not take them.
func fixedIDs() ([]string, error) {
	var ids []string
	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(templateFS, path)
		if err != nil {
			return err
		}
		for _, m := range literalID.FindAllSubmatch(data, -1) {
			ids = append(ids, string(m[1]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan template ids: %w", err)
	}
	return ids, nil
}

// Has reports whether a page template exists.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// Page renders a full page, or only its content block for in-site
// navigation requests.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	data.Path = r.URL.Path

	execName := "base.html"
	if isHTMX(r) {
		execName = "content"
	}

	// Render into a buffer first so a template failure can still become a
	// clean 500 instead of a half-written page.
	var buf strings.Builder
	if err := executeTemplate(&buf, tmpl, execName, data); err != nil {
		slog.Error("render page failed", "page", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, buf.String())
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by in-site navigation.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// describeText accepts the surrounding copy used for generated alt text.
func describeText(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case content.TextNode:
		return d.Text
	default:
		return ""
	}
}
