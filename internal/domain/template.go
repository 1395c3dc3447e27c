package domain

// BudgetTier is the "$" price band declared on a template or preference.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "$"
	BudgetMedium BudgetTier = "$$"
	BudgetHigh   BudgetTier = "$$$"
)

// Level maps a tier to 1..3; unknown/malformed tiers map to 0 so a bad
// field degrades that factor to zero rather than failing the run.
func (b BudgetTier) Level() int {
	switch b {
	case BudgetLow:
		return 1
	case BudgetMedium:
		return 2
	case BudgetHigh:
		return 3
	default:
		return 0
	}
}

type DurationClass string

const (
	DurationQuick   DurationClass = "quick"
	DurationHalfDay DurationClass = "half-day"
	DurationFullDay DurationClass = "full-day"
)

// Ord gives adjacent classes adjacent ordinals; 0 means unknown.
func (d DurationClass) Ord() int {
	switch d {
	case DurationQuick:
		return 1
	case DurationHalfDay:
		return 2
	case DurationFullDay:
		return 3
	default:
		return 0
	}
}

type Environment string

const (
	EnvIndoor  Environment = "indoor"
	EnvOutdoor Environment = "outdoor"
	EnvBoth    Environment = "both"
)

// Compatible reports whether a template declaring env e can run under the
// requested environment. "both" on either side always matches.
func (e Environment) Compatible(requested Environment) bool {
	if e == EnvBoth || requested == EnvBoth || requested == "" {
		return true
	}
	return e == requested
}

type VenueCountPref string

const (
	VenueCountSingle   VenueCountPref = "single"
	VenueCountMultiple VenueCountPref = "multiple"
)

// ActivityTemplate is a reusable description of a date activity. The
// catalog is loaded once at startup and treated as immutable; titles and
// descriptions may carry a {partner_name} placeholder that the UI layer
// substitutes, never the engine.
type ActivityTemplate struct {
	ID          string
	Title       string
	Description string

	// RequiredVenueCategories is ordered: the first category is the one
	// the template most specifically needs. Empty means no venue needed
	// (an at-home activity).
	RequiredVenueCategories []VenueCategory

	BudgetTier  BudgetTier
	Duration    string // free text, e.g. "2-3 hours"; classed by the engine
	Styles      []string
	LoveTags    []string
	Environment Environment
}

// NeedsVenue reports whether the template requires at least one venue.
func (t ActivityTemplate) NeedsVenue() bool { return len(t.RequiredVenueCategories) > 0 }

// UserPreferences is the couple's stated input for one matching run.
type UserPreferences struct {
	BudgetTier    BudgetTier
	Duration      DurationClass
	VenueCount    VenueCountPref
	LoveTags      []string
	Interests     []string
	UserCoords    *Coords
	PartnerCoords *Coords
	ExcludeIDs    []string // template ids already shown; caller-managed
}
