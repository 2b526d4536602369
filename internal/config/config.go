package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration loaded from environment variables.
// It is the single source of truth for every service binary; each service
// reads only the sections it needs.
type Config struct {
	Port           string
	Env            string
	ServiceName    string
	JWTSecret      string
	MigrationsPath string

	DB      DatabaseConfig
	Redis   RedisConfig
	Peers   PeerConfig
	Lookup  LookupConfig
	Gateway GatewayConfig
	Worker  WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// PeerConfig contains base URLs of the other services in the cluster.
type PeerConfig struct {
	ProductURL   string
	PricingURL   string
	InventoryURL string
	UserURL      string
}

// LookupConfig tunes the outbound lookup client used for cross-service
// price/inventory/product calls.
type LookupConfig struct {
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

// GatewayConfig contains the gateway trust parameters. Route and role
// tables are built once at startup from these values and never mutated.
type GatewayConfig struct {
	TrustedServices []string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	CacheWarmInterval   time.Duration
	CacheWarmCategories []string
	ViewCacheTTL        time.Duration
	FanOutLimit         int
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.ServiceName = getEnv("SERVICE_NAME", "")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.MigrationsPath = getEnv("MIGRATIONS_PATH", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Peer services
	cfg.Peers = PeerConfig{
		ProductURL:   getEnv("PRODUCT_SERVICE_URL", "http://product-service:8081"),
		PricingURL:   getEnv("PRICING_SERVICE_URL", "http://pricing-service:8082"),
		InventoryURL: getEnv("INVENTORY_SERVICE_URL", "http://inventory-service:8083"),
		UserURL:      getEnv("USER_SERVICE_URL", "http://user-service:8084"),
	}

	// Outbound lookup client
	var err error
	if cfg.Lookup.Timeout, err = parseDurationEnv("LOOKUP_TIMEOUT", "3s"); err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_TIMEOUT: %w", err)
	}
	cfg.Lookup.MaxAttempts = getEnvInt("LOOKUP_MAX_ATTEMPTS", 3)
	if cfg.Lookup.Backoff, err = parseDurationEnv("LOOKUP_BACKOFF", "300ms"); err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_BACKOFF: %w", err)
	}

	// Gateway trust list
	cfg.Gateway = GatewayConfig{
		TrustedServices: splitCSV(getEnv("TRUSTED_SERVICES", "PRICING-SERVICE,INVENTORY-SERVICE,PRODUCT-SERVICE")),
	}

	// Workers
	if cfg.Worker.CacheWarmInterval, err = parseDurationEnv("CACHE_WARM_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_WARM_INTERVAL: %w", err)
	}
	cfg.Worker.CacheWarmCategories = splitCSV(getEnv("CACHE_WARM_CATEGORIES", ""))
	if cfg.Worker.ViewCacheTTL, err = parseDurationEnv("VIEW_CACHE_TTL", "30s"); err != nil {
		return nil, fmt.Errorf("invalid VIEW_CACHE_TTL: %w", err)
	}
	cfg.Worker.FanOutLimit = getEnvInt("ENRICH_FANOUT_LIMIT", 8)
	if cfg.Worker.FanOutLimit <= 0 {
		return nil, errors.New("ENRICH_FANOUT_LIMIT must be positive")
	}

	// Validate JWT_SECRET. Every service either issues, verifies, or
	// forwards tokens, so a missing secret is always a deployment error.
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

// splitCSV splits a comma-separated value into trimmed non-empty parts.
func splitCSV(raw string) []string {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
