// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content defines the primitives every section schema is built from:
// text nodes (tag + text), media references and link references. Section
// schemas nest these under named slots; a page is a set of such sections.
//
// Decoding is tolerant on purpose of the wire format: a remote document that
// carries a wrong type for a node degrades to an empty node instead of
// failing the whole document.
package content

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Tag is the element a TextNode asks to be rendered as. Only the members of
// the closed set below are honoured; anything else resolves to TagP.
type Tag string

const (
	TagH1   Tag = "h1"
	TagH2   Tag = "h2"
	TagH3   Tag = "h3"
	TagH4   Tag = "h4"
	TagH5   Tag = "h5"
	TagH6   Tag = "h6"
	TagP    Tag = "p"
	TagSpan Tag = "span"
)

var allowedTags = map[Tag]bool{
	TagH1: true, TagH2: true, TagH3: true, TagH4: true, TagH5: true, TagH6: true,
	TagP: true, TagSpan: true,
}

// Resolve returns the tag itself when it belongs to the allowed set and TagP
// otherwise (including the empty tag).
func (t Tag) Resolve() Tag {
	if allowedTags[t] {
		return t
	}
	return TagP
}

// IsHeading reports whether the resolved tag is one of h1..h6.
func (t Tag) IsHeading() bool {
	r := t.Resolve()
	return r != TagP && r != TagSpan
}

// TextNode is the unit of copy: a tag and a text. The text may hold markup
// produced by the content backend; whether it is trusted is decided by the
// caller at render time, never by the node.
type TextNode struct {
	Tag  Tag    `json:"tag" yaml:"tag"`
	Text string `json:"text" yaml:"text"`
}

// Text builds a node from a tag and a text.
func Text(tag Tag, text string) TextNode {
	return TextNode{Tag: tag, Text: text}
}

// IsEmpty reports whether the node carries no visible text.
func (n TextNode) IsEmpty() bool {
	return strings.TrimSpace(n.Text) == ""
}

// UnmarshalJSON accepts the canonical {"tag","text"} object, a bare string
// (treated as a paragraph), and degrades every other shape to an empty node.
// A non-string tag becomes empty and resolves to p at render time.
func (n *TextNode) UnmarshalJSON(data []byte) error {
	*n = TextNode{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		n.Tag = TagP
		n.Text = s
		return nil
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		n.Tag = Tag(scalarString(raw["tag"]))
		n.Text = scalarString(raw["text"])
		return nil
	default:
		return nil
	}
}

// scalarString renders a JSON scalar as a string. Strings are unquoted,
// numbers and booleans keep their literal form, everything else is empty.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		b, err := strconv.ParseBool(string(raw))
		if err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	case 'n', '{', '[':
		return ""
	default:
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return ""
		}
		return num.String()
	}
}

// MediaRef points at an image. Alt is optional; renderers generate one when
// it is absent.
type MediaRef struct {
	URL string `json:"url" yaml:"url"`
	Alt string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// IsEmpty reports whether the reference has no URL.
func (m MediaRef) IsEmpty() bool {
	return strings.TrimSpace(m.URL) == ""
}

// UnmarshalJSON accepts {"url","alt"} or a bare URL string.
func (m *MediaRef) UnmarshalJSON(data []byte) error {
	*m = MediaRef{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		m.URL = scalarString(data)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		m.URL = scalarString(raw["url"])
		m.Alt = scalarString(raw["alt"])
	}
	return nil
}

// LinkRef is a link target and its label. The target decides how it is
// rendered (see Kind) but never changes the shape.
type LinkRef struct {
	Link string   `json:"link" yaml:"link"`
	Text TextNode `json:"text" yaml:"text"`
}

// IsEmpty reports whether the link has no target.
func (l LinkRef) IsEmpty() bool {
	return strings.TrimSpace(l.Link) == ""
}

// UnmarshalJSON accepts {"link","text"}; other shapes give an empty link.
func (l *LinkRef) UnmarshalJSON(data []byte) error {
	*l = LinkRef{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	l.Link = scalarString(raw["link"])
	if t, ok := raw["text"]; ok {
		_ = l.Text.UnmarshalJSON(t)
	}
	return nil
}

// LinkKind classifies a link target.
type LinkKind int

const (
	// LinkInternal is an in-app route, rendered for in-app navigation.
	LinkInternal LinkKind = iota
	// LinkExternal carries a protocol prefix and opens in a new tab.
	LinkExternal
	// LinkDocument ends in a downloadable document extension and opens in a new tab.
	LinkDocument
)

var externalPrefixes = []string{"http://", "https://", "mailto:", "tel:", "//"}

var documentExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".zip", ".csv",
}

// Kind classifies the link target. Query strings and fragments are ignored
// when looking at the extension.
func (l LinkRef) Kind() LinkKind {
	target := strings.ToLower(strings.TrimSpace(l.Link))
	for _, p := range externalPrefixes {
		if strings.HasPrefix(target, p) {
			return LinkExternal
		}
	}
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	for _, ext := range documentExtensions {
		if strings.HasSuffix(target, ext) {
			return LinkDocument
		}
	}
	return LinkInternal
}
