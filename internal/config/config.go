package config

import (
	"fmt"
	"log"
	"os"
	"time"
)

// AccessTokenTTL is fixed; it is not externally configurable on purpose so
// issuance and verification can never disagree on the lifetime.
const AccessTokenTTL = 30 * time.Minute

const devSecretFallback = "dev-secret-key-change-in-production-12345"

type Config struct {
	Env         string
	Port        string
	DatabaseDSN string
	JWTSecret   []byte
	TokenTTL    time.Duration
}

// Load reads the environment exactly once at process start. The resulting
// Config is passed explicitly to whatever needs it.
func Load() *Config {
	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8000"),
		DatabaseDSN: buildDSN(),
		TokenTTL:    AccessTokenTTL,
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		secret = devSecretFallback
		log.Println("WARNING: JWT_SECRET_KEY is not set, using an insecure development default. Set JWT_SECRET_KEY before deploying to production!")
	}
	cfg.JWTSecret = []byte(secret)

	return cfg
}

func buildDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "bizflow"),
		getEnv("DB_PORT", "5432"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
