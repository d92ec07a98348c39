// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sections declares the content schema of every section of the site,
// its content endpoint and its compiled-in default. Schemas are plain structs
// built from the content primitives; a remote document is decoded into a
// fresh zero value, so anything it omits is absent rather than defaulted.
package sections

import "dholerasite/internal/content"

// Chrome is the site-wide header and footer.
type Chrome struct {
	Logo    content.MediaRef   `json:"logo" yaml:"logo"`
	Brand   content.TextNode   `json:"brand" yaml:"brand"`
	Nav     []content.LinkRef  `json:"nav" yaml:"nav"`
	Footer  Footer             `json:"footer" yaml:"footer"`
	Contact []content.TextNode `json:"contact" yaml:"contact"`
}

// Footer is the bottom strip of every page.
type Footer struct {
	About     content.TextNode  `json:"about" yaml:"about"`
	Links     []content.LinkRef `json:"links" yaml:"links"`
	Copyright content.TextNode  `json:"copyright" yaml:"copyright"`
}

// Slide is one carousel entry.
type Slide struct {
	Image    content.MediaRef `json:"image" yaml:"image"`
	Title    content.TextNode `json:"title" yaml:"title"`
	Subtitle content.TextNode `json:"subtitle" yaml:"subtitle"`
	Cta      content.LinkRef  `json:"cta" yaml:"cta"`
}

// Carousel is the home page hero.
type Carousel struct {
	Slides []Slide `json:"slides" yaml:"slides"`
}

// Stat is a number with a caption.
type Stat struct {
	Value content.TextNode `json:"value" yaml:"value"`
	Label content.TextNode `json:"label" yaml:"label"`
}

// About introduces the company.
type About struct {
	Heading content.TextNode `json:"heading" yaml:"heading"`
	Body    content.TextNode `json:"body" yaml:"body"`
	Image   content.MediaRef `json:"image" yaml:"image"`
	Stats   []Stat           `json:"stats" yaml:"stats"`
	Cta     content.LinkRef  `json:"cta" yaml:"cta"`
}

// Lead returns the text used for the page description.
func (a *About) Lead() content.TextNode { return a.Body }

// Feature is one selling point. Icon is a class hint for the stylesheet.
type Feature struct {
	Icon        string           `json:"icon" yaml:"icon"`
	Title       content.TextNode `json:"title" yaml:"title"`
	Description content.TextNode `json:"description" yaml:"description"`
}

// Features lists the selling points.
type Features struct {
	Heading    content.TextNode `json:"heading" yaml:"heading"`
	Subheading content.TextNode `json:"subheading" yaml:"subheading"`
	Features   []Feature        `json:"features" yaml:"features"`
}

// FeaturedInvestment spotlights one project.
type FeaturedInvestment struct {
	Heading     content.TextNode   `json:"heading" yaml:"heading"`
	Description content.TextNode   `json:"description" yaml:"description"`
	Image       content.MediaRef   `json:"image" yaml:"image"`
	Highlights  []content.TextNode `json:"highlights" yaml:"highlights"`
	Cta         content.LinkRef    `json:"cta" yaml:"cta"`
}

// Opportunity is a project card with a price.
type Opportunity struct {
	content.Card `yaml:",inline"`
	Price        content.TextNode `json:"price" yaml:"price"`
}

// Opportunities lists the available projects.
type Opportunities struct {
	Heading       content.TextNode `json:"heading" yaml:"heading"`
	Intro         content.TextNode `json:"intro" yaml:"intro"`
	Opportunities []Opportunity    `json:"opportunities" yaml:"opportunities"`
}

// Lead returns the text used for the page description.
func (o *Opportunities) Lead() content.TextNode { return o.Intro }

// Step is one stage of the buying process.
type Step struct {
	Number      content.TextNode `json:"number" yaml:"number"`
	Title       content.TextNode `json:"title" yaml:"title"`
	Description content.TextNode `json:"description" yaml:"description"`
}

// Process explains how buying works.
type Process struct {
	Heading content.TextNode `json:"heading" yaml:"heading"`
	Steps   []Step           `json:"steps" yaml:"steps"`
}

// Review is one testimonial.
type Review struct {
	Avatar content.MediaRef `json:"avatar" yaml:"avatar"`
	Name   content.TextNode `json:"name" yaml:"name"`
	Role   content.TextNode `json:"role" yaml:"role"`
	Quote  content.TextNode `json:"quote" yaml:"quote"`
}

// Reviews is a testimonial carousel.
type Reviews struct {
	Heading content.TextNode `json:"heading" yaml:"heading"`
	Reviews []Review         `json:"reviews" yaml:"reviews"`
}

// Member is one team member.
type Member struct {
	Photo content.MediaRef `json:"photo" yaml:"photo"`
	Name  content.TextNode `json:"name" yaml:"name"`
	Role  content.TextNode `json:"role" yaml:"role"`
}

// Team lists the people.
type Team struct {
	Heading content.TextNode `json:"heading" yaml:"heading"`
	Intro   content.TextNode `json:"intro" yaml:"intro"`
	Members []Member         `json:"members" yaml:"members"`
}

// Route is a connectivity entry (road, rail, air, port).
type Route struct {
	Title       content.TextNode `json:"title" yaml:"title"`
	Distance    content.TextNode `json:"distance" yaml:"distance"`
	Description content.TextNode `json:"description" yaml:"description"`
}

// Connectivity describes how the region is reached.
type Connectivity struct {
	Heading     content.TextNode `json:"heading" yaml:"heading"`
	Description content.TextNode `json:"description" yaml:"description"`
	Map         content.MediaRef `json:"map" yaml:"map"`
	Routes      []Route          `json:"routes" yaml:"routes"`
}

// Block is a heading with a rich body.
type Block struct {
	Heading content.TextNode `json:"heading" yaml:"heading"`
	Body    content.TextNode `json:"body" yaml:"body"`
}

// DholeraSIR presents the special investment region.
type DholeraSIR struct {
	Banner   content.Banner   `json:"banner" yaml:"banner"`
	Intro    content.TextNode `json:"intro" yaml:"intro"`
	Blocks   []Block          `json:"blocks" yaml:"blocks"`
	Brochure content.LinkRef  `json:"brochure" yaml:"brochure"`
}

// Lead returns the text used for the page description.
func (d *DholeraSIR) Lead() content.TextNode { return d.Intro }

// Planning describes the land-use zones.
type Planning struct {
	Heading content.TextNode `json:"heading" yaml:"heading"`
	Intro   content.TextNode `json:"intro" yaml:"intro"`
	Zones   []content.Card   `json:"zones" yaml:"zones"`
}

// GalleryItem is one picture with a caption.
type GalleryItem struct {
	Image   content.MediaRef `json:"image" yaml:"image"`
	Caption content.TextNode `json:"caption" yaml:"caption"`
}

// Gallery is the picture page.
type Gallery struct {
	Banner content.Banner `json:"banner" yaml:"banner"`
	Items  []GalleryItem  `json:"items" yaml:"items"`
}

// Lead returns the text used for the page description.
func (g *Gallery) Lead() content.TextNode { return g.Banner.Subtitle }

// Plan is one price plan.
type Plan struct {
	Title    content.TextNode   `json:"title" yaml:"title"`
	Price    content.TextNode   `json:"price" yaml:"price"`
	Features []content.TextNode `json:"features" yaml:"features"`
	Cta      content.LinkRef    `json:"cta" yaml:"cta"`
}

// Pricing is the price page.
type Pricing struct {
	Banner  content.Banner   `json:"banner" yaml:"banner"`
	Heading content.TextNode `json:"heading" yaml:"heading"`
	Plans   []Plan           `json:"plans" yaml:"plans"`
	Note    content.TextNode `json:"note" yaml:"note"`
}

// Lead returns the text used for the page description.
func (p *Pricing) Lead() content.TextNode { return p.Banner.Subtitle }

// ContactSection is the inquiry block embedded in other pages.
type ContactSection struct {
	Heading     content.TextNode   `json:"heading" yaml:"heading"`
	Description content.TextNode   `json:"description" yaml:"description"`
	Image       content.MediaRef   `json:"image" yaml:"image"`
	Form        content.FormLabels `json:"form" yaml:"form"`
}

// Detail is one contact line; Link is optional (mailto:, tel:, maps).
type Detail struct {
	Label content.TextNode `json:"label" yaml:"label"`
	Value content.TextNode `json:"value" yaml:"value"`
	Link  content.LinkRef  `json:"link" yaml:"link"`
}

// Contact is the contact page.
type Contact struct {
	Banner  content.Banner     `json:"banner" yaml:"banner"`
	Heading content.TextNode   `json:"heading" yaml:"heading"`
	Details []Detail           `json:"details" yaml:"details"`
	Form    content.FormLabels `json:"form" yaml:"form"`
}

// Lead returns the text used for the page description.
func (c *Contact) Lead() content.TextNode { return c.Banner.Subtitle }
