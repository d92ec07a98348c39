// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"html"
	"html/template"
	"strings"

	"dholerasite/internal/content"
)

// Mode selects how a node's text reaches the page.
type Mode int

const (
	// Escaped renders the text literally; markup characters are escaped.
	Escaped Mode = iota
	// Trusted interprets the text as markup. The content backend is the only
	// source of such text and is solely responsible for its safety; nothing
	// here sanitizes it.
	Trusted
)

// Tag renders text inside the element named by tag. Tags outside the
// h1..h6/p/span whitelist render as p. Empty text yields an empty element of
// the resolved tag. It never fails.
func Tag(tag content.Tag, text string, mode Mode, class string) template.HTML {
	resolved := string(tag.Resolve())

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(resolved)
	if class = strings.TrimSpace(class); class != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(class))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if text != "" {
		if mode == Trusted {
			b.WriteString(text)
		} else {
			b.WriteString(html.EscapeString(text))
		}
	}
	b.WriteString("</")
	b.WriteString(resolved)
	b.WriteByte('>')
	return template.HTML(b.String())
}

// Node renders a TextNode with its own tag. The class names the semantic
// role the layout wants for it (title, lead, caption...).
func Node(n content.TextNode, mode Mode, class string) template.HTML {
	return Tag(n.Tag, n.Text, mode, class)
}
