package matching

import (
	"math"
	"sort"
	"strings"

	"datenight/internal/domain"
)

// selectDiverse picks the final shortlist. Selection is score-driven:
// the best candidate is always in; after that a candidate is preferred
// when it brings a venue category or style the shortlist hasn't seen.
// Slots that variety alone can't fill go to the highest-scored skipped
// candidates. The accepted set is then reordered for presentation:
// closest venue first (within a tolerance band), score as the
// tie-break.
func selectDiverse(cands []domain.ScoredCandidate, k int, tolerance float64) []domain.ScoredCandidate {
	if len(cands) == 0 || k <= 0 {
		return []domain.ScoredCandidate{}
	}

	sorted := make([]domain.ScoredCandidate, len(cands))
	copy(sorted, cands)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		di, dj := sorted[i].ClosestVenueDistance(), sorted[j].ClosestVenueDistance()
		if di != dj {
			return di < dj
		}
		return sorted[i].Template.ID < sorted[j].Template.ID
	})

	seenCats := make(map[domain.VenueCategory]struct{}, 8)
	seenStyles := make(map[string]struct{}, 8)
	note := func(c domain.ScoredCandidate) {
		for _, v := range c.Venues {
			seenCats[v.Category] = struct{}{}
		}
		for _, s := range styleTags(c) {
			seenStyles[s] = struct{}{}
		}
	}
	addsVariety := func(c domain.ScoredCandidate) bool {
		for _, v := range c.Venues {
			if _, ok := seenCats[v.Category]; !ok {
				return true
			}
		}
		for _, s := range styleTags(c) {
			if _, ok := seenStyles[s]; !ok {
				return true
			}
		}
		return false
	}

	accepted := make([]domain.ScoredCandidate, 0, k)
	skipped := make([]domain.ScoredCandidate, 0, len(sorted))
	for i, c := range sorted {
		if len(accepted) == k {
			break
		}
		if i == 0 || addsVariety(c) {
			accepted = append(accepted, c)
			note(c)
			continue
		}
		skipped = append(skipped, c)
	}
	// Variety ran out before k: backfill from the best skipped
	// candidates, in score order.
	for _, c := range skipped {
		if len(accepted) == k {
			break
		}
		accepted = append(accepted, c)
	}

	sort.Slice(accepted, func(i, j int) bool {
		di, dj := accepted[i].ClosestVenueDistance(), accepted[j].ClosestVenueDistance()
		if !withinTolerance(di, dj, tolerance) {
			return di < dj
		}
		if accepted[i].Score != accepted[j].Score {
			return accepted[i].Score > accepted[j].Score
		}
		return accepted[i].Template.ID < accepted[j].Template.ID
	})
	return accepted
}

func withinTolerance(a, b, tol float64) bool {
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return false
	}
	return math.Abs(a-b) <= tol
}

func styleTags(c domain.ScoredCandidate) []string {
	out := make([]string, 0, len(c.Template.Styles))
	for _, s := range c.Template.Styles {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
