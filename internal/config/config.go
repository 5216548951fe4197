package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings, built once at startup and passed to
// the components that need them. Nothing reads the environment after Load.
type Config struct {
	Addr           string
	DatabaseDriver string // "sqlite3" or "postgres"
	DatabaseDSN    string
	SecretKey      string
	BcryptCost     int
	TokenTTL       time.Duration
}

// Defaults returns development settings. The secret key must be overridden
// in any real deployment.
func Defaults() *Config {
	return &Config{
		Addr:           ":8080",
		DatabaseDriver: "sqlite3",
		DatabaseDSN:    "messagely.db",
		SecretKey:      "dev-secret-change-me",
		BcryptCost:     12,
		TokenTTL:       24 * time.Hour,
	}
}

// Load builds a Config from defaults, an optional .env file, and
// environment variables, in increasing precedence.
func Load() *Config {
	// Silent no-op if no .env exists.
	_ = godotenv.Load()

	cfg := Defaults()

	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		cfg.DatabaseDriver = driver
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if key := os.Getenv("SECRET_KEY"); key != "" {
		cfg.SecretKey = key
	}
	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		if cost, err := strconv.Atoi(costStr); err == nil {
			cfg.BcryptCost = cost
		}
	}
	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil {
			cfg.TokenTTL = ttl
		}
	}

	return cfg
}
