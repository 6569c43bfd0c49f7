package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service.
type Config struct {
	Addr          string
	AdminToken    string
	JWTSigningKey string

	AuditCapacity    int
	AuditQueueSize   int
	AuditRecentLimit int

	PostgresDSN  string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string

	SupplierBaseURL string
	WeatherBaseURL  string
	WeatherCacheTTL time.Duration
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:             envOr("PAWDESK_ADDR", ":8080"),
		AdminToken:       os.Getenv("PAWDESK_ADMIN_TOKEN"),
		JWTSigningKey:    os.Getenv("PAWDESK_JWT_SIGNING_KEY"),
		AuditCapacity:    envInt("PAWDESK_AUDIT_CAPACITY", 100),
		AuditQueueSize:   envInt("PAWDESK_AUDIT_QUEUE_SIZE", 1024),
		AuditRecentLimit: envInt("PAWDESK_AUDIT_RECENT_LIMIT", 20),
		PostgresDSN:      os.Getenv("PAWDESK_POSTGRES_DSN"),
		RedisURL:         os.Getenv("PAWDESK_REDIS_URL"),
		KafkaTopic:       envOr("PAWDESK_KAFKA_AUDIT_TOPIC", "pawdesk.audit"),
		SupplierBaseURL:  envOr("PAWDESK_SUPPLIER_BASE_URL", "https://suppliers.example.com"),
		WeatherBaseURL:   envOr("PAWDESK_WEATHER_BASE_URL", "https://weather.example.com"),
		WeatherCacheTTL:  envDuration("PAWDESK_WEATHER_CACHE_TTL", 10*time.Minute),
	}
	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	if brokers := os.Getenv("PAWDESK_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
