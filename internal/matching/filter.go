package matching

import (
	"sort"

	"datenight/internal/domain"
)

// FilterTemplates drops templates that cannot possibly be satisfied:
// wrong environment, or none of their (intent-expanded) required
// categories present in the pool. Venue-less templates only need the
// environment check. Order is preserved; pure predicate filter.
//
// This is a coarse presence check — remaining unclaimed counts are the
// scorer's and allocator's business.
func FilterTemplates(ts []domain.ActivityTemplate, available map[domain.VenueCategory]struct{}, env domain.Environment) []domain.ActivityTemplate {
	out := make([]domain.ActivityTemplate, 0, len(ts))
	for _, t := range ts {
		if !t.Environment.Compatible(env) {
			continue
		}
		if !t.NeedsVenue() {
			out = append(out, t)
			continue
		}
		if anyCategorySatisfiable(t, available) {
			out = append(out, t)
		}
	}
	return out
}

func anyCategorySatisfiable(t domain.ActivityTemplate, available map[domain.VenueCategory]struct{}) bool {
	intent := DetectIntent(t)
	for _, req := range t.RequiredVenueCategories {
		for _, cat := range allowedCategories(intent, req) {
			if _, ok := available[cat]; ok {
				return true
			}
		}
	}
	return false
}

// CategoriesToDiscover is the union of venue categories worth querying
// the discovery layer for, given which templates could run under the
// requested environment. Intent-widened categories are included so a
// wine template triggers a winery lookup even though it declares "bar".
// Sorted for a stable fan-out order.
func CategoriesToDiscover(ts []domain.ActivityTemplate, env domain.Environment) []domain.VenueCategory {
	set := make(map[domain.VenueCategory]struct{}, 8)
	for _, t := range ts {
		if !t.Environment.Compatible(env) {
			continue
		}
		intent := DetectIntent(t)
		for _, req := range t.RequiredVenueCategories {
			for _, cat := range allowedCategories(intent, req) {
				set[cat] = struct{}{}
			}
		}
	}
	out := make([]domain.VenueCategory, 0, len(set))
	for cat := range set {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
