package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "datenight/internal/adapters/http_server"
	"datenight/internal/adapters/observability"
	"datenight/internal/adapters/places"
	redisad "datenight/internal/adapters/redis"
	"datenight/internal/app"
	"datenight/internal/catalog"
	"datenight/internal/matching"
	"datenight/internal/shared"
	mysqlrepo "datenight/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// catalog: MySQL when a DSN is configured, built-ins otherwise
	templates := catalog.Default()
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		templates = catalog.Load(context.Background(), mysqlrepo.New(db))
		db.Close()
	}
	log.Info().Int("templates", len(templates)).Msg("catalog loaded")

	// deps
	client, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	opts := matching.DefaultOptions()
	opts.MaxRadius = cfg.MaxRadius
	engine := matching.NewEngineWith(matching.DefaultWeights(), opts)

	svc := app.NewRecommendationService(client, cache, engine, templates,
		cfg.Workers, cfg.MaxRadius, cfg.CacheTTL)

	// http
	srv := server.New(cfg.HTTPTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
