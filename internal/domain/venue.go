package domain

// VenueCategory is the controlled vocabulary tag carried by every venue.
type VenueCategory string

const (
	CatRestaurant VenueCategory = "restaurant"
	CatCafe       VenueCategory = "cafe"
	CatBar        VenueCategory = "bar"
	CatWinery     VenueCategory = "winery"
	CatPark       VenueCategory = "park"
	CatMuseum     VenueCategory = "museum"
	CatTheater    VenueCategory = "theater"
	CatCinema     VenueCategory = "cinema"
	CatActivity   VenueCategory = "activity"
	CatBeach      VenueCategory = "beach"
	CatMarket     VenueCategory = "market"
)

// Venue is a concrete geolocated place, already distance-annotated by the
// discovery collaborator. Rating and price level are optional.
type Venue struct {
	ID          string
	Name        string
	Category    VenueCategory
	Coords      *Coords
	Distance    float64 // from the query origin, caller's unit
	Rating      *float64
	PriceLevel  *int
	Open        *bool
	Description string
}

type Coords struct{ Lat, Lon float64 }

// Midpoint is the arithmetic mean of two coordinate pairs. It is the only
// geographic computation the engine owns; everything else arrives
// pre-computed from the discovery layer.
func Midpoint(a, b Coords) Coords {
	return Coords{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}
}
