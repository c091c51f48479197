package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Addr          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	TokenTTL      time.Duration
	AllowedOrigin string
	Production    bool
}

// Load reads the configuration from the environment. godotenv populates the
// environment from .env before this runs.
func Load() (Config, error) {
	const op = "config.Load"

	cfg := Config{
		Addr:          getEnv("ADDR", ":9000"),
		MongoURI:      os.Getenv("MONGO_URI"),
		DBName:        getEnv("DB_NAME", "talent_bridge"),
		JWTSecret:     os.Getenv("SECRET_KEY"),
		TokenTTL:      time.Hour,
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		Production:    os.Getenv("APP_ENV") == "production",
	}

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("%s: MONGO_URI is not set", op)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("%s: SECRET_KEY is not set", op)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
