package main

import (
	"context"
	"flag"
	"strings"

	"github.com/rs/zerolog/log"

	"datenight/internal/adapters/observability"
	"datenight/internal/adapters/places"
	redisad "datenight/internal/adapters/redis"
	"datenight/internal/app"
	"datenight/internal/catalog"
	"datenight/internal/domain"
	"datenight/internal/matching"
	"datenight/internal/shared"
)

// planner runs one matching pass from the command line: discover venues
// around the configured origin, match the built-in catalog, log the
// shortlist. Useful for poking at weights without standing up the API.
func main() {
	var (
		budget    = flag.String("budget", "$$", "budget tier: $, $$ or $$$")
		duration  = flag.String("duration", "quick", "duration class: quick, half-day or full-day")
		venues    = flag.String("venues", "single", "venue count preference: single or multiple")
		env       = flag.String("env", "both", "environment: indoor, outdoor or both")
		loveTags  = flag.String("love-tags", "", "comma-separated love languages")
		interests = flag.String("interests", "", "comma-separated interest keywords")
		k         = flag.Int("k", 0, "shortlist size (0 = configured default)")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.PlacesBase).
		Int("workers", cfg.Workers).
		Float64("radius", cfg.MaxRadius).
		Msg("planner starting")

	client, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	opts := matching.DefaultOptions()
	opts.MaxRadius = cfg.MaxRadius
	engine := matching.NewEngineWith(matching.DefaultWeights(), opts)

	svc := app.NewRecommendationService(client, cache, engine, catalog.Default(),
		cfg.Workers, cfg.MaxRadius, cfg.CacheTTL)

	kk := *k
	if kk == 0 {
		kk = cfg.Shortlist
	}
	out, err := svc.Recommend(ctx, app.Request{
		Prefs: domain.UserPreferences{
			BudgetTier: domain.BudgetTier(*budget),
			Duration:   domain.DurationClass(*duration),
			VenueCount: domain.VenueCountPref(*venues),
			LoveTags:   splitCSV(*loveTags),
			Interests:  splitCSV(*interests),
		},
		Environment: domain.Environment(*env),
		Origin:      &domain.Coords{Lat: cfg.OriginLat, Lon: cfg.OriginLon},
		K:           kk,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("matching run failed")
	}

	for i, c := range out {
		ev := log.Info().
			Int("rank", i+1).
			Str("template", c.Template.ID).
			Str("title", c.Template.Title).
			Float64("score", c.Score)
		for _, v := range c.Venues {
			ev = ev.Str("venue_"+string(v.Category), v.Name)
		}
		ev.Msg("plan")
	}
	log.Info().Int("candidates", len(out)).Msg("planner completed")
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
