package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"sleevenotes/internal/auth"
	"sleevenotes/internal/logging"
	"sleevenotes/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.Setup(logging.Config{})
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid JWT secret")
	}

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	dataStore := store.New(db)

	handler := newHTTPHandler(cfg, dataStore, tokens)

	log.Info().Str("addr", cfg.Addr).Msg("API server listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
