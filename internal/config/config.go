package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // TIME_ZONE must resolve in minimal containers

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const csrfKeyLength = 32

// Config holds the server settings read from the environment.
type Config struct {
	DatabaseURL string
	Port        string
	BaseURL     string
	SiteTitle   string
	Location    *time.Location
	Env         string
	LogLevel    string

	AdminUsername     string
	AdminPasswordHash string
	AdminRateLimit    float64
	AdminRateBurst    int

	// AdminPlaintextHTTP is set when the admin is reached over http:// rather than https://.
	AdminPlaintextHTTP bool
	CSRFKey            []byte
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              getEnv("PORT", "8080"),
		BaseURL:           os.Getenv("BASE_URL"),
		SiteTitle:         getEnv("SITE_TITLE", "Podcasts"),
		Env:               getEnv("APP_ENV", "production"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	loc, err := time.LoadLocation(getEnv("TIME_ZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.AdminRateLimit, err = strconv.ParseFloat(getEnv("ADMIN_RATE_LIMIT", "5"), 64); err != nil || cfg.AdminRateLimit <= 0 {
		return nil, fmt.Errorf("invalid ADMIN_RATE_LIMIT %q", os.Getenv("ADMIN_RATE_LIMIT"))
	}
	if cfg.AdminRateBurst, err = strconv.Atoi(getEnv("ADMIN_RATE_BURST", "10")); err != nil || cfg.AdminRateBurst <= 0 {
		return nil, fmt.Errorf("invalid ADMIN_RATE_BURST %q", os.Getenv("ADMIN_RATE_BURST"))
	}

	if cfg.AdminPlaintextHTTP, err = strconv.ParseBool(getEnv("ADMIN_PLAINTEXT_HTTP", "false")); err != nil {
		return nil, fmt.Errorf("invalid ADMIN_PLAINTEXT_HTTP %q", os.Getenv("ADMIN_PLAINTEXT_HTTP"))
	}

	if key := os.Getenv("CSRF_KEY"); key != "" {
		if len(key) != csrfKeyLength {
			return nil, fmt.Errorf("CSRF_KEY must be %d bytes, got %d", csrfKeyLength, len(key))
		}
		cfg.CSRFKey = []byte(key)
	} else {
		// Tokens issued before a restart stop validating.
		cfg.CSRFKey = securecookie.GenerateRandomKey(csrfKeyLength)
		if cfg.CSRFKey == nil {
			return nil, errors.New("failed to generate CSRF key")
		}
	}

	return cfg, nil
}

// AdminEnabled reports whether admin credentials were configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
