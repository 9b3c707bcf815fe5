package main

import (
	"os"

	"estates-backend/internal/config"
	"estates-backend/internal/interfaces/router"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}
	if db != nil {
		log.Info().Msg("Postgres connected")
	}
	if rdb != nil {
		log.Info().Msg("Redis connected")
	}
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msgf("Health check: http://localhost:%s/health/json", cfg.Port)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
