package matching

import (
	"strings"

	"datenight/internal/domain"
)

// Intent is a coarse classification of what a template is really about,
// derived from its title and description. Both the template filter and
// the allocator consult the same rule table, so "wine tasting must not
// land in a cafe" is decided in exactly one place.
type Intent string

const (
	IntentGeneral     Intent = "general"
	IntentWineTasting Intent = "wine_tasting"
	IntentCoffee      Intent = "coffee"
	IntentCocktails   Intent = "cocktails"
	IntentPicnic      Intent = "picnic"
)

type intentRule struct {
	// allow widens the acceptable categories for a required category that
	// appears in the list (e.g. a wine template requiring "bar" may also
	// take a "winery"). Empty allow means the required category stands.
	allow []domain.VenueCategory
	// deny is absolute: these categories never satisfy this intent.
	deny []domain.VenueCategory
}

var intentRules = map[Intent]intentRule{
	IntentWineTasting: {
		allow: []domain.VenueCategory{domain.CatBar, domain.CatWinery},
		deny:  []domain.VenueCategory{domain.CatCafe},
	},
	IntentCocktails: {
		deny: []domain.VenueCategory{domain.CatCafe},
	},
	IntentCoffee: {
		allow: []domain.VenueCategory{domain.CatCafe},
		deny:  []domain.VenueCategory{domain.CatBar},
	},
	IntentPicnic: {
		allow: []domain.VenueCategory{domain.CatPark, domain.CatBeach},
	},
}

// Keyword order matters: first hit wins.
var intentKeywords = []struct {
	kw     string
	intent Intent
}{
	{"wine tasting", IntentWineTasting},
	{"winery", IntentWineTasting},
	{"wine", IntentWineTasting},
	{"cocktail", IntentCocktails},
	{"mixology", IntentCocktails},
	{"coffee", IntentCoffee},
	{"picnic", IntentPicnic},
}

// DetectIntent scans the template's title and description for intent
// keywords. Templates with no signal are IntentGeneral.
func DetectIntent(t domain.ActivityTemplate) Intent {
	text := strings.ToLower(t.Title + " " + t.Description)
	for _, e := range intentKeywords {
		if strings.Contains(text, e.kw) {
			return e.intent
		}
	}
	return IntentGeneral
}

// allowedCategories expands a required category under an intent. The
// result always honors the deny list, including against the required
// category itself.
func allowedCategories(intent Intent, required domain.VenueCategory) []domain.VenueCategory {
	rule, ok := intentRules[intent]
	if !ok {
		return []domain.VenueCategory{required}
	}

	cats := []domain.VenueCategory{required}
	for _, a := range rule.allow {
		if a == required {
			// required category is part of the allow group: the whole
			// group is acceptable
			cats = rule.allow
			break
		}
	}

	out := cats[:0:0]
	for _, c := range cats {
		if !containsCategory(rule.deny, c) {
			out = append(out, c)
		}
	}
	return out
}

func containsCategory(cs []domain.VenueCategory, c domain.VenueCategory) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
