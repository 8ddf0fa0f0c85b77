package config

import (
	"os"
	"time"

	"github.com/spf13/cast"
)

type Config struct {
	Port        int
	DatabaseURL string
	MoviesPath  string
	SeriesPath  string
	TMDBAPIKey  string

	// RedisAddr selects the Redis session backend when set; empty means
	// sessions live in process memory and are swept on SessionSweepSpec.
	RedisAddr        string
	SessionTTL       time.Duration
	SessionSweepSpec string
}

func Load() *Config {
	return &Config{
		Port:             envInt("PORT", 8080),
		DatabaseURL:      env("DATABASE_URL", "postgres://homestream:homestream@db:5432/homestream?sslmode=disable"),
		MoviesPath:       env("MOVIES_PATH", "/media/movies"),
		SeriesPath:       env("SERIES_PATH", "/media/series"),
		TMDBAPIKey:       env("TMDB_API_KEY", ""),
		RedisAddr:        env("REDIS_ADDR", ""),
		SessionTTL:       envDuration("SESSION_TTL", 7*24*time.Hour),
		SessionSweepSpec: env("SESSION_SWEEP_SPEC", "@every 1h"),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := cast.ToDurationE(v); err == nil {
			return d
		}
	}
	return fallback
}
