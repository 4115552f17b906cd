package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"dizzie/internal/http/middleware"
	"dizzie/internal/logging"
	"dizzie/internal/web"
)

func main() {
	_ = godotenv.Load()

	logging.Setup(logging.Config{
		Level:  envOrDefault("LOG_LEVEL", "info"),
		Format: envOrDefault("LOG_FORMAT", "json"),
	})

	apiURL := fmt.Sprintf("http://%s:%s/api/v1",
		envOrDefault("API_HOSTNAME", "localhost"),
		envOrDefault("API_PORT", "8080"))
	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "3000"))

	handler := web.New(apiURL)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("addr", addr).Str("api", apiURL).Msg("web front end listening")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
