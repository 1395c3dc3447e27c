package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"datenight/internal/adapters/observability"
	"datenight/internal/domain"
	"datenight/internal/matching"
)

// ErrNoOrigin means the request carried neither an explicit origin nor
// both partners' coordinates to derive one from.
var ErrNoOrigin = errors.New("no query origin: provide origin or both coordinate pairs")

// Request is one recommendation query from the UI layer.
type Request struct {
	Prefs       domain.UserPreferences
	Environment domain.Environment
	Origin      *domain.Coords // optional; midpoint of the couple otherwise
	K           int
}

// RecommendationService owns everything around the pure engine: deciding
// the query origin, fanning discovery lookups out per category, caching
// the pooled result, and recording run metrics. All I/O happens here,
// before the engine boundary.
type RecommendationService struct {
	places   domain.PlacesClient
	cache    domain.Cache
	engine   *matching.Engine
	catalog  []domain.ActivityTemplate
	workers  int64
	radius   float64
	cacheTTL time.Duration
}

func NewRecommendationService(places domain.PlacesClient, cache domain.Cache, engine *matching.Engine, catalog []domain.ActivityTemplate, workers int, radius float64, ttl time.Duration) *RecommendationService {
	if workers <= 0 {
		workers = 4
	}
	return &RecommendationService{
		places:   places,
		cache:    cache,
		engine:   engine,
		catalog:  catalog,
		workers:  int64(workers),
		radius:   radius,
		cacheTTL: ttl,
	}
}

// Catalog returns the immutable template catalog (for the listing API).
func (s *RecommendationService) Catalog() []domain.ActivityTemplate {
	out := make([]domain.ActivityTemplate, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Recommend resolves the origin, assembles the venue pool, and runs one
// matching pass. An empty shortlist is a valid answer, not an error.
func (s *RecommendationService) Recommend(ctx context.Context, req Request) ([]domain.ScoredCandidate, error) {
	origin, err := s.resolveOrigin(req)
	if err != nil {
		return nil, err
	}

	pool, err := s.venuePool(ctx, origin, req.Environment)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	out := s.engine.Match(s.catalog, pool, req.Prefs, req.Environment, req.K)
	observability.ObserveMatch(len(pool), len(out))
	log.Info().
		Str("run_id", runID).
		Int("pool", len(pool)).
		Int("candidates", len(out)).
		Str("environment", string(req.Environment)).
		Msg("match run")
	return out, nil
}

func (s *RecommendationService) resolveOrigin(req Request) (domain.Coords, error) {
	if req.Origin != nil {
		return *req.Origin, nil
	}
	if req.Prefs.UserCoords != nil && req.Prefs.PartnerCoords != nil {
		return domain.Midpoint(*req.Prefs.UserCoords, *req.Prefs.PartnerCoords), nil
	}
	if req.Prefs.UserCoords != nil {
		return *req.Prefs.UserCoords, nil
	}
	return domain.Coords{}, ErrNoOrigin
}

// venuePool returns the cached pool for this origin cell when fresh,
// otherwise fans one discovery lookup out per category and waits for all
// of them — the template filter needs the full category picture before
// the engine runs.
func (s *RecommendationService) venuePool(ctx context.Context, origin domain.Coords, env domain.Environment) ([]domain.Venue, error) {
	key := poolKey(origin, s.radius)
	var cached []domain.Venue
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	cats := matching.CategoriesToDiscover(s.catalog, env)
	if len(cats) == 0 {
		return []domain.Venue{}, nil
	}

	var (
		mu     sync.Mutex
		merged []domain.Venue
		wg     sync.WaitGroup
	)
	sem := semaphore.NewWeighted(s.workers)
	for _, cat := range cats {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(cat domain.VenueCategory) {
			defer wg.Done()
			defer sem.Release(1)

			raw, err := s.places.Nearby(ctx, origin, cat, s.radius)
			if err != nil {
				// A category with no coverage just shrinks the pool; the
				// engine degrades by dropping the affected templates.
				log.Warn().Err(err).Str("category", string(cat)).Msg("discovery lookup failed")
				return
			}
			vs := mapVenues(raw, cat)
			mu.Lock()
			merged = append(merged, vs...)
			mu.Unlock()
		}(cat)
	}
	wg.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Goroutine completion order must not leak into results.
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Category != merged[j].Category {
			return merged[i].Category < merged[j].Category
		}
		return merged[i].ID < merged[j].ID
	})

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, merged, s.cacheTTL)
	}
	return merged, nil
}

// poolKey rounds the origin to ~100m so nearby requests share a cache
// entry instead of stampeding the provider.
func poolKey(origin domain.Coords, radius float64) string {
	return fmt.Sprintf("pool:%.3f:%.3f:%.1f", origin.Lat, origin.Lon, radius)
}
