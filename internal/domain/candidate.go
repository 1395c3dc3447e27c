package domain

import "math"

// ScoreBreakdown itemizes the per-factor contributions. Every field is
// floor-clamped to 0; a mismatch contributes nothing, never a penalty.
type ScoreBreakdown struct {
	Budget       float64
	Duration     float64
	VenueCount   float64
	Availability float64
	LoveTags     float64
	Interests    float64
	Distance     float64
	Variety      float64
}

func (b ScoreBreakdown) Total() float64 {
	return b.Budget + b.Duration + b.VenueCount + b.Availability +
		b.LoveTags + b.Interests + b.Distance + b.Variety
}

// ScoredCandidate is one ranked recommendation: a template plus the
// venues claimed for it in this run.
type ScoredCandidate struct {
	Template  ActivityTemplate
	Score     float64
	Breakdown ScoreBreakdown
	Venues    []Venue // empty for at-home templates
}

// PrimaryVenueCategory is the category of the first assigned venue, or ""
// for an at-home candidate.
func (c ScoredCandidate) PrimaryVenueCategory() VenueCategory {
	if len(c.Venues) == 0 {
		return ""
	}
	return c.Venues[0].Category
}

// ClosestVenueDistance is the smallest assigned-venue distance, or +Inf
// when no venue is assigned so venue-less candidates sort last on the
// closeness key.
func (c ScoredCandidate) ClosestVenueDistance() float64 {
	if len(c.Venues) == 0 {
		return math.Inf(1)
	}
	min := c.Venues[0].Distance
	for _, v := range c.Venues[1:] {
		if v.Distance < min {
			min = v.Distance
		}
	}
	return min
}
