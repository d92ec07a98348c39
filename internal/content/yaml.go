// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"dholerasite/internal/markdown"
)

// textNodeYAML is the authoring shape of a TextNode in compiled-in default
// files. Markdown, when present, wins over Text and is converted to HTML.
type textNodeYAML struct {
	Tag      string `yaml:"tag"`
	Text     string `yaml:"text"`
	Markdown string `yaml:"markdown"`
}

// UnmarshalYAML decodes a default-content node. A bare scalar is a
// paragraph. A mapping may use `markdown:` instead of `text:`; the markdown is
// rendered once here so the node carries trusted markup, exactly as if the
// content backend had produced it.
func (n *TextNode) UnmarshalYAML(value *yaml.Node) error {
	*n = TextNode{}
	switch value.Kind {
	case yaml.ScalarNode:
		n.Tag = TagP
		n.Text = value.Value
		return nil
	case yaml.MappingNode:
		var raw textNodeYAML
		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("text node at line %d: %w", value.Line, err)
		}
		n.Tag = Tag(raw.Tag)
		n.Text = raw.Text
		if strings.TrimSpace(raw.Markdown) != "" {
			html, err := markdown.ToInlineHTML(raw.Markdown)
			if err != nil {
				return fmt.Errorf("text node markdown at line %d: %w", value.Line, err)
			}
			n.Text = strings.TrimSpace(html)
		}
		return nil
	default:
		return fmt.Errorf("text node at line %d: unexpected yaml kind %d", value.Line, value.Kind)
	}
}
