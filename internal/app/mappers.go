package app

import (
	"strconv"
	"strings"

	"datenight/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Discovery providers disagree on field names; these registries keep the
// coercion rules in one table per target field.
var venueAliases = map[string][]string{
	"id":       {"id", "place_id", "placeId", "venue_id", "reference"},
	"name":     {"name", "title", "display_name", "displayName.text"},
	"category": {"category", "venue_type", "type", "primary_type", "primaryType"},
	"distance": {"distance", "distance_km", "distance_mi", "dist"},
	"lat":      {"lat", "latitude", "location.lat", "geometry.location.lat", "coordinates.lat"},
	"lon":      {"lon", "lng", "longitude", "location.lon", "location.lng", "geometry.location.lng", "coordinates.lng"},
	"rating":   {"rating", "avg_rating", "score", "rating.value"},
	"price":    {"price_level", "priceLevel", "price", "price_tier"},
	"open":     {"open_now", "openNow", "opening_hours.open_now", "is_open"},
	"desc":     {"description", "editorial_summary.overview", "snippet", "about"},
}

// Provider category strings folded into the controlled vocabulary.
var categoryAliases = map[string]domain.VenueCategory{
	"restaurant":     domain.CatRestaurant,
	"food":           domain.CatRestaurant,
	"meal_takeaway":  domain.CatRestaurant,
	"cafe":           domain.CatCafe,
	"coffee_shop":    domain.CatCafe,
	"bar":            domain.CatBar,
	"pub":            domain.CatBar,
	"night_club":     domain.CatBar,
	"winery":         domain.CatWinery,
	"wine_bar":       domain.CatWinery,
	"park":           domain.CatPark,
	"garden":         domain.CatPark,
	"museum":         domain.CatMuseum,
	"art_gallery":    domain.CatMuseum,
	"theater":        domain.CatTheater,
	"theatre":        domain.CatTheater,
	"cinema":         domain.CatCinema,
	"movie_theater":  domain.CatCinema,
	"activity":       domain.CatActivity,
	"bowling_alley":  domain.CatActivity,
	"amusement_park": domain.CatActivity,
	"beach":          domain.CatBeach,
	"market":         domain.CatMarket,
	"farmers_market": domain.CatMarket,
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		switch s := v.(type) {
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, p := range venueAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func getBoolFlexible(m map[string]any, paths ...string) *bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			b := v
			return &b
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "yes", "open":
				b := true
				return &b
			case "false", "no", "closed":
				b := false
				return &b
			}
		}
	}
	return nil
}

/********** venue mapper **********/

// mapVenue converts one raw discovery payload into a domain.Venue.
// requested is the category the lookup asked for; it backstops payloads
// that omit or mangle their own category field. Records the normalizer
// would reject anyway (no id, no name) come back as-is and get dropped
// there — mapping never fails.
func mapVenue(raw map[string]any, requested domain.VenueCategory) domain.Venue {
	v := domain.Venue{
		ID:          firstNonEmptyAlias(raw, "id"),
		Name:        firstNonEmptyAlias(raw, "name"),
		Category:    requested,
		Description: firstNonEmptyAlias(raw, "desc"),
	}

	if c := strings.ToLower(strings.TrimSpace(firstNonEmptyAlias(raw, "category"))); c != "" {
		if cat, ok := categoryAliases[c]; ok {
			v.Category = cat
		}
	}

	if d := getFloatFlexible(raw, venueAliases["distance"]...); d != nil {
		v.Distance = *d
	} else {
		v.Distance = -1 // unknown distance, normalizer drops it
	}

	lat := getFloatFlexible(raw, venueAliases["lat"]...)
	lon := getFloatFlexible(raw, venueAliases["lon"]...)
	if lat != nil && lon != nil {
		v.Coords = &domain.Coords{Lat: *lat, Lon: *lon}
	}

	v.Rating = getFloatFlexible(raw, venueAliases["rating"]...)
	if p := getFloatFlexible(raw, venueAliases["price"]...); p != nil {
		lvl := int(*p)
		v.PriceLevel = &lvl
	}
	v.Open = getBoolFlexible(raw, venueAliases["open"]...)

	return v
}

// mapVenues maps a whole lookup result for one requested category.
func mapVenues(raw []map[string]any, requested domain.VenueCategory) []domain.Venue {
	out := make([]domain.Venue, 0, len(raw))
	for _, r := range raw {
		out = append(out, mapVenue(r, requested))
	}
	return out
}
