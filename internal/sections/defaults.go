// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sections

import (
	"embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// loadDefault decodes one embedded default file into a fresh tree. Every
// call decodes again, so no two mounts ever share a default.
func loadDefault[T any](name string) (*T, error) {
	data, err := defaultFiles.ReadFile("defaults/" + name)
	if err != nil {
		return nil, fmt.Errorf("read default %s: %w", name, err)
	}
	v := new(T)
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode default %s: %w", name, err)
	}
	return v, nil
}

// defaultFactory returns a factory for the named file. The files are
// compiled in and checked by CheckDefaults at startup, so a failure here is
// a build defect; it is logged and an empty tree is returned.
func defaultFactory[T any](name string) func() *T {
	return func() *T {
		v, err := loadDefault[T](name)
		if err != nil {
			slog.Error("compiled-in default is broken", "file", name, "error", err)
			return new(T)
		}
		return v
	}
}

var (
	DefaultChrome             = defaultFactory[Chrome]("chrome.yaml")
	DefaultCarousel           = defaultFactory[Carousel]("carousel.yaml")
	DefaultAbout              = defaultFactory[About]("about.yaml")
	DefaultFeatures           = defaultFactory[Features]("features.yaml")
	DefaultFeaturedInvestment = defaultFactory[FeaturedInvestment]("featured_investment.yaml")
	DefaultOpportunities      = defaultFactory[Opportunities]("opportunities.yaml")
	DefaultProcess            = defaultFactory[Process]("process.yaml")
	DefaultReviews            = defaultFactory[Reviews]("reviews.yaml")
	DefaultTeam               = defaultFactory[Team]("team.yaml")
	DefaultConnectivity       = defaultFactory[Connectivity]("connectivity.yaml")
	DefaultDholeraSIR         = defaultFactory[DholeraSIR]("dholera_sir.yaml")
	DefaultPlanning           = defaultFactory[Planning]("planning.yaml")
	DefaultGallery            = defaultFactory[Gallery]("gallery.yaml")
	DefaultPricing            = defaultFactory[Pricing]("pricing.yaml")
	DefaultContactSection     = defaultFactory[ContactSection]("contact_section.yaml")
	DefaultContact            = defaultFactory[Contact]("contact.yaml")
)

// CheckDefaults decodes every embedded default once and returns the first
// error. main calls it before serving.
func CheckDefaults() error {
	checks := []func() error{
		check[Chrome]("chrome.yaml"),
		check[Carousel]("carousel.yaml"),
		check[About]("about.yaml"),
		check[Features]("features.yaml"),
		check[FeaturedInvestment]("featured_investment.yaml"),
		check[Opportunities]("opportunities.yaml"),
		check[Process]("process.yaml"),
		check[Reviews]("reviews.yaml"),
		check[Team]("team.yaml"),
		check[Connectivity]("connectivity.yaml"),
		check[DholeraSIR]("dholera_sir.yaml"),
		check[Planning]("planning.yaml"),
		check[Gallery]("gallery.yaml"),
		check[Pricing]("pricing.yaml"),
		check[ContactSection]("contact_section.yaml"),
		check[Contact]("contact.yaml"),
	}
	for _, c := range checks {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

func check[T any](name string) func() error {
	return func() error {
		_, err := loadDefault[T](name)
		return err
	}
}
