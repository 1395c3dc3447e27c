package matching

import (
	"sort"

	"datenight/internal/domain"
)

// venuePool indexes a normalized pool by category and tracks which venue
// ids have been claimed during the current matching run. A pool is built
// fresh per Match call and never shared, so runs can't contaminate each
// other.
type venuePool struct {
	byCategory map[domain.VenueCategory][]domain.Venue
	used       map[string]struct{}
}

func newVenuePool(pool []domain.Venue) *venuePool {
	p := &venuePool{
		byCategory: make(map[domain.VenueCategory][]domain.Venue, 8),
		used:       make(map[string]struct{}, len(pool)),
	}
	for _, v := range pool {
		p.byCategory[v.Category] = append(p.byCategory[v.Category], v)
	}
	for cat := range p.byCategory {
		vs := p.byCategory[cat]
		sort.Slice(vs, func(i, j int) bool { return preferVenue(vs[i], vs[j]) })
	}
	return p
}

// preferVenue is the allocation order: closest first, then best rated
// (missing rating sorts last), then id so equal venues order the same on
// every run.
func preferVenue(a, b domain.Venue) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	ra, rb := ratingOf(a), ratingOf(b)
	if ra != rb {
		return ra > rb
	}
	return a.ID < b.ID
}

func ratingOf(v domain.Venue) float64 {
	if v.Rating == nil {
		return -1
	}
	return *v.Rating
}

func (p *venuePool) claimedCount() int { return len(p.used) }

// unclaimedIn counts distinct unclaimed venues acceptable for the
// template across all its required categories.
func (p *venuePool) unclaimedIn(t domain.ActivityTemplate, intent Intent) int {
	counted := make(map[string]struct{}, 8)
	for _, req := range t.RequiredVenueCategories {
		for _, cat := range allowedCategories(intent, req) {
			for _, v := range p.byCategory[cat] {
				if _, taken := p.used[v.ID]; taken {
					continue
				}
				counted[v.ID] = struct{}{}
			}
		}
	}
	return len(counted)
}

// closestUnclaimed returns the distance of the nearest unclaimed
// acceptable venue, or ok=false when none remains.
func (p *venuePool) closestUnclaimed(t domain.ActivityTemplate, intent Intent) (float64, bool) {
	best, found := 0.0, false
	for _, req := range t.RequiredVenueCategories {
		for _, cat := range allowedCategories(intent, req) {
			for _, v := range p.byCategory[cat] {
				if _, taken := p.used[v.ID]; taken {
					continue
				}
				if !found || v.Distance < best {
					best, found = v.Distance, true
				}
			}
		}
	}
	return best, found
}

// allocate claims one venue per required category, in declared order.
// The claim is atomic: either every category is satisfied and the used
// set grows, or nothing is recorded and ok is false.
//
// When a category has no unclaimed venue left, an already-claimed venue
// may be re-offered — but only if remainingDemand shows no unprocessed
// template still requiring that category. That keeps the fallback a true
// last resort instead of quietly starving later templates.
func (p *venuePool) allocate(t domain.ActivityTemplate, intent Intent, remainingDemand map[domain.VenueCategory]int) ([]domain.Venue, bool) {
	picked := make([]domain.Venue, 0, len(t.RequiredVenueCategories))
	pickedIDs := make(map[string]struct{}, len(t.RequiredVenueCategories))

	for _, req := range t.RequiredVenueCategories {
		v, ok := p.pickFor(req, intent, pickedIDs, remainingDemand)
		if !ok {
			return nil, false // no partial claims
		}
		picked = append(picked, v)
		pickedIDs[v.ID] = struct{}{}
	}

	for _, v := range picked {
		p.used[v.ID] = struct{}{}
	}
	return picked, true
}

func (p *venuePool) pickFor(req domain.VenueCategory, intent Intent, pickedIDs map[string]struct{}, remainingDemand map[domain.VenueCategory]int) (domain.Venue, bool) {
	cats := allowedCategories(intent, req)

	// First choice: best unclaimed venue across the allowed categories.
	if v, ok := p.bestWhere(cats, func(v domain.Venue) bool {
		_, taken := p.used[v.ID]
		_, mine := pickedIDs[v.ID]
		return !taken && !mine
	}); ok {
		return v, true
	}

	// Category exhausted. Re-offering a claimed venue is only acceptable
	// when nobody later in this run still needs the category.
	if remainingDemand[req] > 0 {
		return domain.Venue{}, false
	}
	return p.bestWhere(cats, func(v domain.Venue) bool {
		_, mine := pickedIDs[v.ID]
		return !mine
	})
}

func (p *venuePool) bestWhere(cats []domain.VenueCategory, keep func(domain.Venue) bool) (domain.Venue, bool) {
	var best domain.Venue
	found := false
	for _, cat := range cats {
		for _, v := range p.byCategory[cat] {
			if !keep(v) {
				continue
			}
			if !found || preferVenue(v, best) {
				best, found = v, true
			}
		}
	}
	return best, found
}
