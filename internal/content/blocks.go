// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

// Banner is the page-top strip used by inner pages.
type Banner struct {
	Title    TextNode `json:"title" yaml:"title"`
	Subtitle TextNode `json:"subtitle" yaml:"subtitle"`
	Image    MediaRef `json:"image" yaml:"image"`
}

// Card is the common list item: an optional image, a title, a description
// and an optional link. Several section schemas reuse it for their arrays.
type Card struct {
	Image       MediaRef `json:"image" yaml:"image"`
	Title       TextNode `json:"title" yaml:"title"`
	Description TextNode `json:"description" yaml:"description"`
	Link        LinkRef  `json:"link" yaml:"link"`
}

// FormLabels carries the copy of an inquiry form. The submit node is the
// button label.
type FormLabels struct {
	Name    TextNode `json:"name" yaml:"name"`
	Email   TextNode `json:"email" yaml:"email"`
	Phone   TextNode `json:"phone" yaml:"phone"`
	Message TextNode `json:"message" yaml:"message"`
	Submit  TextNode `json:"submit" yaml:"submit"`
}
