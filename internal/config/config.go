// Package config holds the runtime configuration and the fixed limits of the
// complaint service.
package config

import (
	"fmt"
	"os"
	"time"
)

// Upload limits, mirrored in the client-facing error messages.
const (
	MaxAttachments    = 5
	MaxAttachmentSize = 5 << 20 // 5MB per file
)

// TokenTTL is the lifetime of issued capability tokens.
const TokenTTL = 7 * 24 * time.Hour

// TokenIssuer is the iss claim stamped on every token.
const TokenIssuer = "resihub-service"

// Config is assembled from the environment at startup. Secret material is
// never hardcoded; JWT_SECRET must be provided.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   []byte
	UploadDir   string
}

// Load reads configuration from the environment, applying development
// defaults for everything except the JWT secret.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "user"),
			envOr("DB_PASSWORD", "password"),
			envOr("DB_NAME", "resihubdb"),
			envOr("DB_PORT", "5432"),
		)
	}

	return &Config{
		Port:        envOr("PORT", "8080"),
		DatabaseDSN: dsn,
		JWTSecret:   []byte(secret),
		UploadDir:   envOr("UPLOAD_DIR", "uploads"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
