package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	Addr           string
	Hostname       string
	DatabaseURL    string
	Secret         string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	OwnerUsername  string
	OwnerPassword  string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("SECRET")
	if secret == "" {
		return Config{}, errors.New("SECRET env var is required")
	}

	dbHost := envOrDefault("DB_HOST", "localhost")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_DATABASE")
	if dbUser == "" || dbName == "" {
		return Config{}, errors.New("DB_USER and DB_DATABASE env vars are required")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, envOrDefault("DB_PORT", "5432"), dbName)

	return Config{
		Addr:           fmt.Sprintf(":%s", envOrDefault("PORT", "8080")),
		Hostname:       envOrDefault("HOSTNAME", "localhost"),
		DatabaseURL:    dsn,
		Secret:         secret,
		AllowedOrigins: splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		OwnerUsername:  os.Getenv("OWNER_USERNAME"),
		OwnerPassword:  os.Getenv("OWNER_PASSWORD"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
