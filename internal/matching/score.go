package matching

import (
	"strings"

	"datenight/internal/domain"
)

// scoreTemplate computes the itemized breakdown for one template against
// the pool's current claim state. Every factor is independent, capped at
// its weight and never negative; unknown or malformed preference fields
// simply contribute zero. No randomness, no clock: fixed inputs give
// bit-identical breakdowns.
func scoreTemplate(t domain.ActivityTemplate, intent Intent, pool *venuePool, prefs domain.UserPreferences, w Weights, opts Options) domain.ScoreBreakdown {
	var b domain.ScoreBreakdown

	// Budget: full on exact tier, half one tier off, nothing further out.
	if tl, pl := t.BudgetTier.Level(), prefs.BudgetTier.Level(); tl > 0 && pl > 0 {
		switch diff := abs(tl - pl); diff {
		case 0:
			b.Budget = w.Budget
		case 1:
			b.Budget = w.BudgetAdjacent
		}
	}

	// Duration: same thresholded classes, adjacency gets half credit.
	if tc, pc := ClassifyDuration(t.Duration).Ord(), prefs.Duration.Ord(); tc > 0 && pc > 0 {
		switch diff := abs(tc - pc); diff {
		case 0:
			b.Duration = w.Duration
		case 1:
			b.Duration = w.DurationAdjacent
		}
	}

	// Venue-count preference: one required category reads as "single",
	// more as "multiple". Wanting multiple but getting a one-stop date is
	// still partially satisfying.
	if t.NeedsVenue() && prefs.VenueCount != "" {
		tp := domain.VenueCountSingle
		if len(t.RequiredVenueCategories) > 1 {
			tp = domain.VenueCountMultiple
		}
		switch {
		case tp == prefs.VenueCount:
			b.VenueCount = w.VenueCount
		case prefs.VenueCount == domain.VenueCountMultiple && tp == domain.VenueCountSingle:
			b.VenueCount = w.VenueCountPart
		}
	}

	// Availability: zero when every acceptable venue is already claimed
	// (the fine-grained counterpart of the coarse category filter),
	// scaling up to full weight at the saturation count. A template that
	// needs no venue is trivially satisfiable.
	if !t.NeedsVenue() {
		b.Availability = w.Availability
	} else if n := pool.unclaimedIn(t, intent); n > 0 {
		sat := opts.AvailabilitySaturation
		if sat <= 0 {
			sat = 1
		}
		if n > sat {
			n = sat
		}
		b.Availability = w.Availability * float64(n) / float64(sat)
	}

	// Personalization: overlap ratios, deliberately lower-weighted than
	// the hard preferences above.
	b.LoveTags = w.LoveTags * overlapRatio(prefs.LoveTags, t.LoveTags)
	b.Interests = w.Interests * keywordRatio(prefs.Interests, t)

	// Distance bonus: nearest acceptable unclaimed venue, linear from
	// full weight at zero distance down to nothing at MaxRadius.
	if t.NeedsVenue() && opts.MaxRadius > 0 {
		if d, ok := pool.closestUnclaimed(t, intent); ok && d < opts.MaxRadius {
			b.Distance = w.Distance * (1 - d/opts.MaxRadius)
		}
	}

	// Variety: the more venues earlier candidates have claimed, the less
	// another same-pool pick is worth.
	b.Variety = w.Variety / float64(1+pool.claimedCount())

	return b
}

// overlapRatio is |want ∩ have| / |want|, case-insensitive. No stated
// wants means no contribution.
func overlapRatio(want, have []string) float64 {
	if len(want) == 0 || len(have) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	hits := 0
	for _, w := range want {
		if _, ok := set[strings.ToLower(strings.TrimSpace(w))]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(want))
}

// keywordRatio is the share of the user's free-text interest keywords
// that appear anywhere in the template's text or style tags.
func keywordRatio(interests []string, t domain.ActivityTemplate) float64 {
	if len(interests) == 0 {
		return 0
	}
	text := strings.ToLower(t.Title + " " + t.Description + " " + strings.Join(t.Styles, " "))
	hits := 0
	for _, kw := range interests {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k != "" && strings.Contains(text, k) {
			hits++
		}
	}
	return float64(hits) / float64(len(interests))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
