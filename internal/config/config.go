package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv     string
	DBPath     string
	DBDriver   string
	RedisAddr  string
	HTTPPort   int
	CacheTTL   time.Duration
	TeamRoster []string
	RateLimit  float64
	RateBurst  int
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	portStr := getEnv("HTTP_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 8080
	}

	ttlStr := getEnv("CACHE_TTL", "10m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
	}

	rateStr := getEnv("RATE_LIMIT_RPS", "10")
	rps, err := strconv.ParseFloat(rateStr, 64)
	if err != nil || rps <= 0 {
		rps = 10
	}

	burstStr := getEnv("RATE_LIMIT_BURST", "20")
	burst, err := strconv.Atoi(burstStr)
	if err != nil || burst <= 0 {
		burst = 20
	}

	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		DBPath:     getEnv("DB_PATH", "./data/database.db"),
		DBDriver:   getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:   port,
		CacheTTL:   ttl,
		TeamRoster: parseRoster(os.Getenv("TEAM_ROSTER")),
		RateLimit:  rps,
		RateBurst:  burst,
	}
}

// parseRoster splits the comma-separated allow list. An empty variable means
// no filtering.
func parseRoster(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
