package matching

// Weights are the per-factor score contributions. Every factor is capped
// at its weight and floored at zero; totals are plain sums so fixed
// inputs always produce bit-identical scores.
type Weights struct {
	Budget           float64 // exact tier match
	BudgetAdjacent   float64 // one tier off
	Duration         float64 // exact class match
	DurationAdjacent float64 // adjacent class
	VenueCount       float64 // single/multiple preference match
	VenueCountPart   float64 // user wants multiple, template needs one
	Availability     float64 // unclaimed venues in required categories
	LoveTags         float64 // love-language overlap ratio
	Interests        float64 // interest-keyword overlap ratio
	Distance         float64 // closest available venue, scaled to zero at MaxRadius
	Variety          float64 // inverse in venues already claimed this run
}

func DefaultWeights() Weights {
	return Weights{
		Budget:           20,
		BudgetAdjacent:   10,
		Duration:         15,
		DurationAdjacent: 7.5,
		VenueCount:       10,
		VenueCountPart:   5,
		Availability:     15,
		LoveTags:         8,
		Interests:        7,
		Distance:         15,
		Variety:          10,
	}
}

type Options struct {
	// MaxRadius bounds the venue pool and zeroes the distance bonus.
	// Unit is whatever the discovery layer annotated distances with.
	MaxRadius float64

	// AvailabilitySaturation is the unclaimed-venue count at which the
	// availability factor reaches full weight.
	AvailabilitySaturation int

	// DistanceTolerance is the band within which the final presentation
	// order falls back from closeness to score.
	DistanceTolerance float64

	// NameDenylist rejects venues whose name is (case-insensitively) a
	// generic locality string the discovery provider sometimes returns.
	NameDenylist []string
}

func DefaultOptions() Options {
	return Options{
		MaxRadius:              25,
		AvailabilitySaturation: 5,
		DistanceTolerance:      0.5,
		NameDenylist:           defaultNameDenylist,
	}
}
