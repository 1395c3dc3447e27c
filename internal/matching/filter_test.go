package matching_test

import (
	"testing"

	"datenight/internal/domain"
	"datenight/internal/matching"
)

func catSet(cats ...domain.VenueCategory) map[domain.VenueCategory]struct{} {
	set := make(map[domain.VenueCategory]struct{}, len(cats))
	for _, c := range cats {
		set[c] = struct{}{}
	}
	return set
}

func TestFilterTemplates_CategoryPresence(t *testing.T) {
	templates := []domain.ActivityTemplate{
		tmpl("dinner", "Dinner for Two", domain.BudgetMedium, "2 hours", domain.CatRestaurant),
		tmpl("museum", "Gallery Stroll", domain.BudgetMedium, "2 hours", domain.CatMuseum),
		tmpl("home", "Movie Night In", domain.BudgetLow, "2 hours"),
	}

	out := matching.FilterTemplates(templates, catSet(domain.CatRestaurant), domain.EnvBoth)
	if len(out) != 2 {
		t.Fatalf("expected dinner+home to survive, got %d", len(out))
	}
	if out[0].ID != "dinner" || out[1].ID != "home" {
		t.Fatalf("filter must preserve order, got %s,%s", out[0].ID, out[1].ID)
	}
}

func TestFilterTemplates_IntentWidensCategories(t *testing.T) {
	// Wine intent accepts a winery for a bar requirement, so the template
	// survives even with no bar nearby.
	wine := tmpl("wine", "Wine Tasting Tour", domain.BudgetHigh, "2 hours", domain.CatBar)

	out := matching.FilterTemplates([]domain.ActivityTemplate{wine}, catSet(domain.CatWinery), domain.EnvBoth)
	if len(out) != 1 {
		t.Fatalf("winery should satisfy the wine template's bar requirement")
	}

	// A cafe alone never does, whatever its name suggests.
	out = matching.FilterTemplates([]domain.ActivityTemplate{wine}, catSet(domain.CatCafe), domain.EnvBoth)
	if len(out) != 0 {
		t.Fatalf("a cafe must not satisfy a wine-tasting template")
	}
}

func TestFilterTemplates_Environment(t *testing.T) {
	picnic := tmpl("picnic", "Picnic by the Water", domain.BudgetLow, "3 hours", domain.CatPark)
	picnic.Environment = domain.EnvOutdoor

	if out := matching.FilterTemplates([]domain.ActivityTemplate{picnic}, catSet(domain.CatPark), domain.EnvIndoor); len(out) != 0 {
		t.Fatalf("outdoor template must not survive an indoor request")
	}
	if out := matching.FilterTemplates([]domain.ActivityTemplate{picnic}, catSet(domain.CatPark), domain.EnvBoth); len(out) != 1 {
		t.Fatalf("'both' request accepts any environment")
	}
}

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		title string
		want  matching.Intent
	}{
		{"Wine Tasting Tour", matching.IntentWineTasting},
		{"Cocktail Masterclass", matching.IntentCocktails},
		{"Coffee Crawl", matching.IntentCoffee},
		{"Picnic by the Water", matching.IntentPicnic},
		{"Dinner for Two", matching.IntentGeneral},
	}
	for _, c := range cases {
		got := matching.DetectIntent(domain.ActivityTemplate{Title: c.title})
		if got != c.want {
			t.Fatalf("%q: got %s, want %s", c.title, got, c.want)
		}
	}
}
