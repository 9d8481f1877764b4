package models

// SiteContent is the single site copy document keyed by section name.
// Every section is a free-form attribute map.
type SiteContent map[string]any

var SiteSections = []string{
	"hero",
	"featuredTours",
	"stats",
	"sriLankaBanner",
	"features",
	"solutions",
	"destinationsSection",
	"cta",
	"about",
	"contact",
	"footer",
}

// DefaultSiteContent returns a fresh copy of the built-in defaults.
// Persisted content is always merged over it, never used instead of it.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		"hero": map[string]any{
			"title":           "Discover the Wonders of Sri Lanka",
			"subtitle":        "Tailor-made journeys through ancient cities, misty highlands and golden beaches",
			"backgroundImage": "/images/hero.jpg",
			"primaryButton":   map[string]any{"text": "Explore Tours", "link": "/tours"},
			"secondaryButton": map[string]any{"text": "Plan Your Trip", "link": "/contact"},
		},
		"featuredTours": map[string]any{
			"title":    "Featured Tours",
			"subtitle": "Hand-picked itineraries loved by our travellers",
			"viewAll":  "View all tours",
		},
		"stats": map[string]any{
			"items": []any{
				map[string]any{"value": "15+", "label": "Years of Experience"},
				map[string]any{"value": "5000+", "label": "Happy Travellers"},
				map[string]any{"value": "50+", "label": "Destinations"},
				map[string]any{"value": "24/7", "label": "Support"},
			},
		},
		"sriLankaBanner": map[string]any{
			"title":       "Sri Lanka, the Pearl of the Indian Ocean",
			"description": "Eight UNESCO World Heritage Sites, endemic wildlife and tea-covered hills within a day's drive.",
			"image":       "/images/banner.jpg",
		},
		"features": map[string]any{
			"title": "Why Travel With Us",
			"items": []any{
				map[string]any{"title": "Local Experts", "description": "Guides born and raised on the island"},
				map[string]any{"title": "Tailor-made", "description": "Every itinerary adjusted to your pace"},
				map[string]any{"title": "Responsible Travel", "description": "We work with community-owned stays"},
			},
		},
		"solutions": map[string]any{
			"title": "Travel Solutions",
			"items": []any{
				map[string]any{"title": "Private Tours", "description": "Your own vehicle and chauffeur guide"},
				map[string]any{"title": "Group Journeys", "description": "Small groups with fixed departures"},
				map[string]any{"title": "Honeymoons", "description": "Romantic escapes from hills to beaches"},
			},
		},
		"destinationsSection": map[string]any{
			"title":    "Popular Destinations",
			"subtitle": "From the Cultural Triangle to the southern coast",
		},
		"cta": map[string]any{
			"title":       "Ready to Start Your Journey?",
			"description": "Tell us how you like to travel and we will craft the itinerary.",
			"buttonText":  "Get in Touch",
			"buttonLink":  "/contact",
		},
		"about": map[string]any{
			"title":       "About Us",
			"description": "A family-run travel company based in Colombo.",
			"mission":     "Show travellers the real Sri Lanka.",
			"image":       "/images/about.jpg",
		},
		"contact": map[string]any{
			"email":   "info@example.com",
			"phone":   "+94 11 000 0000",
			"address": "Colombo, Sri Lanka",
			"hours":   "Mon - Sat, 9:00 - 18:00",
		},
		"footer": map[string]any{
			"description": "Crafting unforgettable Sri Lankan journeys.",
			"copyright":   "All rights reserved.",
			"social": map[string]any{
				"facebook":  "",
				"instagram": "",
				"twitter":   "",
			},
		},
	}
}
