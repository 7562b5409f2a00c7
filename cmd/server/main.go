// Package main runs the plan-advisor API server. This is the production
// entry point exposing the recommendation and catalog endpoints.
package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"plan-advisor/internal/catalog"
	"plan-advisor/internal/engine"
	"plan-advisor/internal/server"
)

var version = "0.1.0"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	srvCfg := server.DefaultConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			log.Fatal().Str("port", port).Msg("invalid PORT")
		}
		srvCfg.Port = p
	}

	engineCfg := engine.DefaultConfig()
	if path := os.Getenv("ENGINE_CONFIG"); path != "" {
		cfg, err := engine.LoadConfig(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("loading engine config")
		}
		engineCfg = cfg
	}

	manager := catalog.DefaultManager()

	// Optional extra catalog sources.
	if file := os.Getenv("CATALOG_JSON_FILE"); file != "" {
		carrier := os.Getenv("CATALOG_JSON_CARRIER")
		if carrier == "" {
			carrier = "自定义"
		}
		manager.Register(catalog.NewJSONSource(file, carrier))
		log.Info().Str("file", file).Str("carrier", carrier).Msg("registered JSON catalog source")
	}
	if dsn := os.Getenv("CATALOG_POSTGRES_DSN"); dsn != "" {
		carrier := os.Getenv("CATALOG_POSTGRES_CARRIER")
		if carrier == "" {
			log.Fatal().Msg("CATALOG_POSTGRES_CARRIER is required with CATALOG_POSTGRES_DSN")
		}
		db, err := catalog.OpenPostgres(dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to package database")
		}
		defer db.Close()
		manager.Register(catalog.NewPostgresSource(db, carrier))
		log.Info().Str("carrier", carrier).Msg("registered Postgres catalog source")
	}

	srv := server.New(srvCfg, server.NewConfigStore(engineCfg), manager, log.Logger, version)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
