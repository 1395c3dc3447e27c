package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	HTTPTimeout time.Duration
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	PlacesBase  string
	PlacesKey   string
	PlacesRPS   int
	Workers     int // concurrent per-category discovery lookups
	MaxRadius   float64
	Shortlist   int
	CacheTTL    time.Duration

	// cmd/planner demo inputs
	OriginLat float64
	OriginLon float64
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		PlacesBase:  env("PLACES_BASE_URL", "https://places.datenight.dev/v1"),
		PlacesKey:   env("PLACES_API_KEY", ""),
		PlacesRPS:   atoi("PLACES_RPS", 5),
		Workers:     atoi("DISCOVERY_WORKERS", 4),
		MaxRadius:   atof("MAX_RADIUS", 25),
		Shortlist:   atoi("SHORTLIST_SIZE", 3),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 600)) * time.Second,
		OriginLat:   atof("ORIGIN_LAT", 0),
		OriginLon:   atof("ORIGIN_LON", 0),
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("PLACES_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
