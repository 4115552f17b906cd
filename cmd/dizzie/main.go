package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"dizzie/internal/auth"
	"dizzie/internal/logging"
	"dizzie/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	dataStore := store.New(db)

	tokens, err := auth.NewManager(cfg.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager")
	}

	if err := ensureOwner(context.Background(), cfg, dataStore); err != nil {
		log.Fatal().Err(err).Msg("bootstrap")
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHTTPHandler(cfg, tokens, dataStore),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("addr", cfg.Addr).Str("hostname", cfg.Hostname).Msg("API listening")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
