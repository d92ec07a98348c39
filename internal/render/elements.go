// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"bytes"
	"html"
	"html/template"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"dholerasite/internal/content"
)

// strict strips every tag. It is used to derive plain text (alt text, meta
// descriptions) from rich node text, not to clean markup for display.
var strict = bluemonday.StrictPolicy()

// PlainText returns the visible text of a possibly rich string with markup
// removed, entities decoded and whitespace collapsed.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	stripped := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// Truncate cuts s to at most max runes on a word boundary, adding an
// ellipsis when something was cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	cut := string(r[:max])
	if i := strings.LastIndexByte(cut, ' '); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// AltText returns the alt for an image: its own alt when set, else a
// description generated from the surrounding copy, else one derived from the
// file name.
func AltText(m content.MediaRef, describe string) string {
	if alt := strings.TrimSpace(m.Alt); alt != "" {
		return alt
	}
	if d := PlainText(describe); d != "" {
		return d
	}
	base := path.Base(strings.TrimSpace(m.URL))
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.Join(strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	}), " ")
	if base == "" || base == "/" {
		return "Image"
	}
	return "Image of " + base
}

var elementTemplates = template.Must(template.New("elements").Parse(`
{{- define "img" -}}
<img src="{{.Src}}" alt="{{.Alt}}"{{with .Class}} class="{{.}}"{{end}} loading="lazy">
{{- end -}}
{{- define "link" -}}
{{- if .NewTab -}}
<a href="{{.Href}}"{{with .Class}} class="{{.}}"{{end}} target="_blank" rel="noopener noreferrer">{{.Label}}</a>
{{- else -}}
<a href="{{.Href}}"{{with .Class}} class="{{.}}"{{end}} data-nav>{{.Label}}</a>
{{- end -}}
{{- end -}}
`))

type imgView struct {
	Src   string
	Alt   string
	Class string
}

type linkView struct {
	Href   string
	Label  template.HTML
	Class  string
	NewTab bool
}

// Image renders an <img>. src has already been resolved by the caller.
// An empty reference renders nothing.
func Image(m content.MediaRef, src, describe, class string) template.HTML {
	if m.IsEmpty() {
		return ""
	}
	var buf bytes.Buffer
	if err := elementTemplates.ExecuteTemplate(&buf, "img", imgView{
		Src:   src,
		Alt:   AltText(m, describe),
		Class: class,
	}); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

// Link renders an anchor for a LinkRef. External and document links open in
// a new tab; internal ones are marked for in-app navigation. The label is
// always escaped text inside a span. An empty link renders nothing.
func Link(l content.LinkRef, class string) template.HTML {
	if l.IsEmpty() {
		return ""
	}
	label := Tag(content.TagSpan, l.Text.Text, Escaped, "")
	var buf bytes.Buffer
	if err := elementTemplates.ExecuteTemplate(&buf, "link", linkView{
		Href:   strings.TrimSpace(l.Link),
		Label:  label,
		Class:  class,
		NewTab: l.Kind() != content.LinkInternal,
	}); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

// maxDescription bounds a meta description.
const maxDescription = 160

// Description returns the meta description for a page: the plain text of
// the first non-empty node, truncated.
func Description(nodes ...content.TextNode) string {
	for _, n := range nodes {
		if t := PlainText(n.Text); t != "" {
			return Truncate(t, maxDescription)
		}
	}
	return ""
}
