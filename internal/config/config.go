// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/draftstats.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Data sources
	DataDir       string `validate:"required"`
	DraftFile     string `validate:"required"`
	StandingsFile string `validate:"required"`
	RosterPattern string `validate:"required,contains=%d"`
	LeagueFile    string

	// Season join window
	FirstSeason int `validate:"gte=1900"`
	LastSeason  int `validate:"gtefield=FirstSeason"`

	// Rank correlation window
	CorrelationMinYear int `validate:"gte=1900"`
	CorrelationMaxYear int `validate:"gtefield=CorrelationMinYear"`

	// Games played for a "regular" NHL player
	RegularGamesThreshold int `validate:"gte=1"`

	LogLevel slog.Level

	// API server
	APIHost     string
	APIPort     int    `validate:"gte=1,lte=65535"`
	Environment string `validate:"oneof=development staging production"`

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int           `validate:"gte=1"`
	RateLimitWindow   time.Duration `validate:"gt=0"`

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:       envOr("DATA_DIR", "data"),
		DraftFile:     envOr("DRAFT_FILE", "nhldraft.csv"),
		StandingsFile: envOr("STANDINGS_FILE", "seasons.csv"),
		RosterPattern: envOr("ROSTER_PATTERN", "skaters_%d.csv"),
		LeagueFile:    envOr("LEAGUE_FILE", ""),

		FirstSeason: envInt("FIRST_SEASON", 2008),
		LastSeason:  envInt("LAST_SEASON", 2021),

		CorrelationMinYear: envInt("CORRELATION_MIN_YEAR", 1963),
		CorrelationMaxYear: envInt("CORRELATION_MAX_YEAR", 2018),

		RegularGamesThreshold: envInt("REGULAR_GAMES_THRESHOLD", 300),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:4200",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}
