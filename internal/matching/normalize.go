package matching

import (
	"sort"
	"strings"
	"unicode/utf8"

	"datenight/internal/domain"
)

// Names the discovery provider has been seen returning for a whole
// locality instead of an actual venue.
var defaultNameDenylist = []string{
	"downtown",
	"city center",
	"city centre",
	"town center",
	"old town",
	"main street",
	"high street",
	"unnamed place",
	"unnamed road",
}

// NormalizePool deduplicates, validates and distance-sorts a raw venue
// pool. Malformed records are dropped, never reported: an empty result is
// a valid "no venues nearby" outcome. Pure transform; the input slice is
// not mutated.
func NormalizePool(raw []domain.Venue, maxRadius float64, denylist []string) []domain.Venue {
	denied := make(map[string]struct{}, len(denylist))
	for _, d := range denylist {
		denied[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]domain.Venue, 0, len(raw))
	for _, v := range raw {
		if v.ID == "" {
			continue
		}
		name := strings.TrimSpace(v.Name)
		if utf8.RuneCountInString(name) < 3 {
			continue
		}
		if _, bad := denied[strings.ToLower(name)]; bad {
			continue
		}
		if v.Coords == nil {
			continue
		}
		if v.Distance < 0 || (maxRadius > 0 && v.Distance > maxRadius) {
			continue
		}
		if _, dup := seen[v.ID]; dup {
			continue // keep first occurrence
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AvailableCategories is the set of categories present in a normalized pool.
func AvailableCategories(pool []domain.Venue) map[domain.VenueCategory]struct{} {
	set := make(map[domain.VenueCategory]struct{}, 8)
	for _, v := range pool {
		set[v.Category] = struct{}{}
	}
	return set
}
