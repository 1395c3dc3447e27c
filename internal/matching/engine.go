package matching

import (
	"sort"

	"datenight/internal/domain"
)

// DefaultShortlist is how many plans a run returns when the caller
// doesn't say otherwise.
const DefaultShortlist = 3

// Engine is the recommendation matching engine: a pure, synchronous
// computation over in-memory data. It holds only configuration — every
// Match call builds its own claim state, so concurrent calls for
// different users can't see each other.
type Engine struct {
	weights Weights
	opts    Options
}

func NewEngine() *Engine {
	return &Engine{weights: DefaultWeights(), opts: DefaultOptions()}
}

func NewEngineWith(w Weights, o Options) *Engine {
	return &Engine{weights: w, opts: o}
}

// Match scores the catalog against the venue pool and the couple's
// preferences and returns a ranked shortlist of at most k candidates.
// Degenerate inputs (no venues, no surviving templates, fewer than k
// survivors) shrink the result; they are never errors. The venue no-reuse
// invariant holds across the whole result set, subject only to the
// documented exhausted-category fallback.
func (e *Engine) Match(templates []domain.ActivityTemplate, venues []domain.Venue, prefs domain.UserPreferences, env domain.Environment, k int) []domain.ScoredCandidate {
	if k <= 0 {
		k = DefaultShortlist
	}

	pool := NormalizePool(venues, e.opts.MaxRadius, e.opts.NameDenylist)
	ts := dropExcluded(templates, prefs.ExcludeIDs)
	ts = FilterTemplates(ts, AvailableCategories(pool), env)
	if len(ts) == 0 {
		return []domain.ScoredCandidate{}
	}

	state := newVenuePool(pool)

	// Provisional pass against the untouched pool decides processing
	// order: higher provisional score claims venues first, which is what
	// "already claimed by higher-ranked candidates" means for the
	// availability and variety factors.
	order := make([]int, len(ts))
	provisional := make([]float64, len(ts))
	intents := make([]Intent, len(ts))
	for i, t := range ts {
		intents[i] = DetectIntent(t)
		provisional[i] = scoreTemplate(t, intents[i], state, prefs, e.weights, e.opts).Total()
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if provisional[i] != provisional[j] {
			return provisional[i] > provisional[j]
		}
		return ts[i].ID < ts[j].ID
	})

	demand := make(map[domain.VenueCategory]int, 8)
	for _, t := range ts {
		for _, cat := range t.RequiredVenueCategories {
			demand[cat]++
		}
	}

	candidates := make([]domain.ScoredCandidate, 0, len(ts))
	for _, idx := range order {
		t := ts[idx]

		// This template is no longer pending demand for its categories;
		// the reuse fallback only weighs templates still to come.
		for _, cat := range t.RequiredVenueCategories {
			demand[cat]--
		}

		breakdown := scoreTemplate(t, intents[idx], state, prefs, e.weights, e.opts)

		var assigned []domain.Venue
		if t.NeedsVenue() {
			var ok bool
			assigned, ok = state.allocate(t, intents[idx], demand)
			if !ok {
				continue // unsatisfiable this run
			}
		}

		candidates = append(candidates, domain.ScoredCandidate{
			Template:  t,
			Score:     breakdown.Total(),
			Breakdown: breakdown,
			Venues:    assigned,
		})
	}

	return selectDiverse(candidates, k, e.opts.DistanceTolerance)
}

func dropExcluded(ts []domain.ActivityTemplate, exclude []string) []domain.ActivityTemplate {
	if len(exclude) == 0 {
		return ts
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := make([]domain.ActivityTemplate, 0, len(ts))
	for _, t := range ts {
		if _, ok := skip[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}
