// Package catalog holds the built-in activity templates and the loader
// that prefers a repository-backed catalog when one is configured. The
// catalog is immutable reference data shared across matching runs.
package catalog

import (
	"context"

	"github.com/rs/zerolog/log"

	"datenight/internal/domain"
)

var builtin = []domain.ActivityTemplate{
	{
		ID:                      "dinner-classic",
		Title:                   "Dinner for Two",
		Description:             "Share a slow dinner with {partner_name} somewhere you've never tried.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatRestaurant},
		BudgetTier:              domain.BudgetMedium,
		Duration:                "2 hours",
		Styles:                  []string{"romantic", "foodie"},
		LoveTags:                []string{"quality_time"},
		Environment:             domain.EnvIndoor,
	},
	{
		ID:                      "coffee-crawl",
		Title:                   "Coffee Crawl",
		Description:             "Hop between two cafes and rank the pour-overs together.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatCafe, domain.CatCafe},
		BudgetTier:              domain.BudgetLow,
		Duration:                "2-3 hours",
		Styles:                  []string{"casual", "foodie"},
		LoveTags:                []string{"quality_time", "words_of_affirmation"},
		Environment:             domain.EnvIndoor,
	},
	{
		ID:                      "wine-tasting",
		Title:                   "Wine Tasting Tour",
		Description:             "Work through a flight and pretend you can taste the oak.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatBar},
		BudgetTier:              domain.BudgetHigh,
		Duration:                "2 hours",
		Styles:                  []string{"romantic", "sophisticated"},
		LoveTags:                []string{"quality_time"},
		Environment:             domain.EnvIndoor,
	},
	{
		ID:                      "park-picnic",
		Title:                   "Picnic in the Park",
		Description:             "Pack a basket for {partner_name} and find a quiet patch of grass.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatPark},
		BudgetTier:              domain.BudgetLow,
		Duration:                "3 hours",
		Styles:                  []string{"romantic", "outdoorsy"},
		LoveTags:                []string{"quality_time", "acts_of_service"},
		Environment:             domain.EnvOutdoor,
	},
	{
		ID:                      "museum-afternoon",
		Title:                   "Museum Afternoon",
		Description:             "Wander the galleries and argue gently about modern art.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatMuseum},
		BudgetTier:              domain.BudgetMedium,
		Duration:                "3-4 hours",
		Styles:                  []string{"cultured", "indoorsy"},
		LoveTags:                []string{"quality_time", "words_of_affirmation"},
		Environment:             domain.EnvIndoor,
	},
	{
		ID:                      "movie-classic",
		Title:                   "Cinema Night",
		Description:             "Back row, big screen, shared popcorn.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatCinema},
		BudgetTier:              domain.BudgetMedium,
		Duration:                "3 hours",
		Styles:                  []string{"classic", "relaxed"},
		LoveTags:                []string{"quality_time", "physical_touch"},
		Environment:             domain.EnvIndoor,
	},
	{
		ID:                      "dinner-and-show",
		Title:                   "Dinner and a Show",
		Description:             "An early table near the theater, then curtain up.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatRestaurant, domain.CatTheater},
		BudgetTier:              domain.BudgetHigh,
		Duration:                "5 hours",
		Styles:                  []string{"romantic", "sophisticated"},
		LoveTags:                []string{"quality_time", "receiving_gifts"},
		Environment:             domain.EnvIndoor,
	},
	{
		ID:                      "market-morning",
		Title:                   "Market Morning",
		Description:             "Browse the stalls, split a pastry, cook the haul later.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatMarket},
		BudgetTier:              domain.BudgetLow,
		Duration:                "2 hours",
		Styles:                  []string{"casual", "foodie"},
		LoveTags:                []string{"acts_of_service", "quality_time"},
		Environment:             domain.EnvOutdoor,
	},
	{
		ID:                      "adventure-day",
		Title:                   "Try-Something Day",
		Description:             "Book whatever the nearest activity spot offers and commit to it.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatActivity},
		BudgetTier:              domain.BudgetMedium,
		Duration:                "all day",
		Styles:                  []string{"adventurous", "playful"},
		LoveTags:                []string{"quality_time", "physical_touch"},
		Environment:             domain.EnvBoth,
	},
	{
		ID:                      "cook-together",
		Title:                   "Cook-Off at Home",
		Description:             "One kitchen, two dishes, {partner_name} judges both.",
		RequiredVenueCategories: nil,
		BudgetTier:              domain.BudgetLow,
		Duration:                "2 hours",
		Styles:                  []string{"playful", "foodie"},
		LoveTags:                []string{"acts_of_service", "quality_time"},
		Environment:             domain.EnvIndoor,
	},
	{
		ID:                      "game-night",
		Title:                   "Board Game Night In",
		Description:             "Old rivalries, new snacks, no phones.",
		RequiredVenueCategories: nil,
		BudgetTier:              domain.BudgetLow,
		Duration:                "3 hours",
		Styles:                  []string{"playful", "relaxed"},
		LoveTags:                []string{"quality_time"},
		Environment:             domain.EnvIndoor,
	},
	{
		ID:                      "beach-sunset",
		Title:                   "Sunset on the Sand",
		Description:             "Time the walk so the sun does the hard work.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatBeach},
		BudgetTier:              domain.BudgetLow,
		Duration:                "90 min",
		Styles:                  []string{"romantic", "outdoorsy"},
		LoveTags:                []string{"physical_touch", "quality_time"},
		Environment:             domain.EnvOutdoor,
	},
}

// Default returns a copy of the built-in catalog so callers can't mutate
// the shared backing array.
func Default() []domain.ActivityTemplate {
	out := make([]domain.ActivityTemplate, len(builtin))
	copy(out, builtin)
	return out
}

// Load fetches the catalog from the repository, falling back to the
// built-ins when the repo is nil, errors, or is empty. A service without
// a catalog store still has dates to offer.
func Load(ctx context.Context, repo domain.TemplateRepository) []domain.ActivityTemplate {
	if repo == nil {
		return Default()
	}
	ts, err := repo.ListTemplates(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("catalog load failed, using built-ins")
		return Default()
	}
	if len(ts) == 0 {
		return Default()
	}
	return ts
}
