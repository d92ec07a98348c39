// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sections

import "dholerasite/internal/provider"

// Content endpoints, relative to the API origin.
const (
	EndpointChrome             = "/api/admin-page"
	EndpointCarousel           = "/api/carousel"
	EndpointAbout              = "/api/about-section"
	EndpointFeatures           = "/api/feature-section"
	EndpointFeaturedInvestment = "/api/featured-investment"
	EndpointOpportunities      = "/api/investment-opportunities"
	EndpointProcess            = "/api/process-section"
	EndpointReviews            = "/api/reviews-section"
	EndpointTeam               = "/api/team-section"
	EndpointConnectivity       = "/api/connectivities"
	EndpointDholeraSIR         = "/api/dholera-sir"
	EndpointPlanning           = "/api/planning"
	EndpointGallery            = "/api/gallery"
	EndpointPricing            = "/api/pricing"
	EndpointContactSection     = "/api/contact-section"
	EndpointContact            = "/api/contact"
)

// Set holds one provider per section, all sharing a fetcher.
type Set struct {
	Chrome             *provider.Provider[Chrome]
	Carousel           *provider.Provider[Carousel]
	About              *provider.Provider[About]
	Features           *provider.Provider[Features]
	FeaturedInvestment *provider.Provider[FeaturedInvestment]
	Opportunities      *provider.Provider[Opportunities]
	Process            *provider.Provider[Process]
	Reviews            *provider.Provider[Reviews]
	Team               *provider.Provider[Team]
	Connectivity       *provider.Provider[Connectivity]
	DholeraSIR         *provider.Provider[DholeraSIR]
	Planning           *provider.Provider[Planning]
	Gallery            *provider.Provider[Gallery]
	Pricing            *provider.Provider[Pricing]
	ContactSection     *provider.Provider[ContactSection]
	Contact            *provider.Provider[Contact]
}

// NewSet builds the providers. A nil fetcher keeps every section on its
// default.
func NewSet(f provider.Fetcher) *Set {
	return &Set{
		Chrome:             provider.New("chrome", EndpointChrome, DefaultChrome, f),
		Carousel:           provider.New("carousel", EndpointCarousel, DefaultCarousel, f),
		About:              provider.New("about", EndpointAbout, DefaultAbout, f),
		Features:           provider.New("features", EndpointFeatures, DefaultFeatures, f),
		FeaturedInvestment: provider.New("featured-investment", EndpointFeaturedInvestment, DefaultFeaturedInvestment, f),
		Opportunities:      provider.New("opportunities", EndpointOpportunities, DefaultOpportunities, f),
		Process:            provider.New("process", EndpointProcess, DefaultProcess, f),
		Reviews:            provider.New("reviews", EndpointReviews, DefaultReviews, f),
		Team:               provider.New("team", EndpointTeam, DefaultTeam, f),
		Connectivity:       provider.New("connectivity", EndpointConnectivity, DefaultConnectivity, f),
		DholeraSIR:         provider.New("dholera-sir", EndpointDholeraSIR, DefaultDholeraSIR, f),
		Planning:           provider.New("planning", EndpointPlanning, DefaultPlanning, f),
		Gallery:            provider.New("gallery", EndpointGallery, DefaultGallery, f),
		Pricing:            provider.New("pricing", EndpointPricing, DefaultPricing, f),
		ContactSection:     provider.New("contact-section", EndpointContactSection, DefaultContactSection, f),
		Contact:            provider.New("contact", EndpointContact, DefaultContact, f),
	}
}
