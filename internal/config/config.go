package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string // postgres DSN; empty means local sqlite
	SQLitePath    string
	SessionSecret string
	LogJSON       bool
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "tribune.db"),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
		LogJSON:       getEnv("LOG_JSON", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
