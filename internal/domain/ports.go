package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// TemplateRepository loads the activity catalog. The catalog is read-only
// reference data; there are no write paths for recommendations.
type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]ActivityTemplate, error)
	GetTemplate(ctx context.Context, id string) (ActivityTemplate, error)
}

// PlacesClient is the venue-discovery collaborator: one lookup per
// category, returning raw provider payloads. Mapping into Venue happens
// in the app layer so provider field drift stays out of the domain.
type PlacesClient interface {
	Nearby(ctx context.Context, origin Coords, category VenueCategory, radius float64) ([]map[string]any, error)
}

// Cache stores the assembled venue pool between runs; venue discovery
// is the expensive step, not matching.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
