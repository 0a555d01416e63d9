package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database. Empty disables PostgreSQL; reply outcomes are then counted in memory.
	DatabaseURL string

	// Redis. Empty keeps sessions, chat history and pending OTPs in process memory.
	RedisURL string

	// Session
	SessionSecret string        // Used for signing cookies (min 32 chars)
	SessionTTL    time.Duration // Idle timeout for sessions and chat history

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Responder
	TableFile string // Optional YAML or TOML table replacing the built-in data

	// Chat
	MaxHistory int // Messages kept per user

	// Login
	OTPTTL    time.Duration
	ExposeOTP bool // Echo the simulated code in API responses

	// Rate limiting, requests per minute per IP
	RateLimit int

	// Outcome metrics
	OutcomeRetention time.Duration
	PruneInterval    time.Duration

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "MedChat"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	env := getEnv("ENV", "development")
	isDev := env == "development" || env == "dev"

	return &Config{
		Env:              env,
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		SessionTTL:       getEnvDuration("SESSION_TTL", 24*time.Hour),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),
		TableFile:        getEnv("TABLE_FILE", ""),
		MaxHistory:       getEnvInt("MAX_HISTORY", 200),
		OTPTTL:           getEnvDuration("OTP_TTL", 5*time.Minute),
		ExposeOTP:        getEnvBool("EXPOSE_OTP", isDev),
		RateLimit:        getEnvInt("RATE_LIMIT", 100),
		OutcomeRetention: getEnvDuration("OUTCOME_RETENTION", 30*24*time.Hour),
		PruneInterval:    getEnvDuration("PRUNE_INTERVAL", time.Hour),

		SiteTitle:   getEnv("SITE_TITLE", "MedChat"),
		SiteTagline: getEnv("SITE_TAGLINE", "Your medical assistant"),
		SiteFooter:  getEnv("SITE_FOOTER", "MedChat - not a substitute for professional medical advice"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasDatabase reports whether PostgreSQL is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasRedis reports whether Redis storage is configured.
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}
