package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port string

	// Either DATABASE_URL or the discrete DB_* pieces
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret string

	StripeSecretKey string
	StripeAPIBase   string

	// Catalog feed; empty CatalogFeedURL falls back to the Stripe API base
	CatalogFeedURL         string
	CatalogRefreshInterval time.Duration

	// Base URL the payment provider redirects back to
	FrontendURL string
}

// Load reads the configuration from environment variables. JWT_SECRET is
// required; everything else has a usable default for local development.
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPassword:  getenv("DB_PASSWORD", "postgres"),
		DBName:      getenv("DB_NAME", "storefront"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripeAPIBase:   getenv("STRIPE_API_BASE", "https://api.stripe.com"),

		CatalogFeedURL: os.Getenv("CATALOG_FEED_URL"),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:8080"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	interval := getenv("CATALOG_REFRESH_INTERVAL", "5m")
	d, err := time.ParseDuration(interval)
	if err != nil {
		return Config{}, fmt.Errorf("CATALOG_REFRESH_INTERVAL must be a duration: %w", err)
	}
	cfg.CatalogRefreshInterval = d

	return cfg, nil
}

// DSN builds a postgres connection string from the discrete DB_* pieces.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
