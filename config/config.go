package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	PORT        string
	GIN_MODE    string
	LOG_LEVEL   string
	CORS_ORIGIN string

	DB_DRIVER string
	DB_URL    string

	JWT_SECRET          string
	ADMIN_PASSWORD_HASH string

	UPLOAD_DIR        string
	UPLOAD_MAX_BYTES  int64
	UPLOAD_ALLOW_WEBM bool

	SMTP_HOST         string
	SMTP_PORT         string
	SMTP_USER         string
	SMTP_PASSWORD     string
	SMTP_FROM         string
	CONTACT_NOTIFY_TO string

	REDIS_ADDR          string
	CONTACT_RATE_LIMIT  int
	CONTACT_RATE_WINDOW time.Duration
)

// DefaultUploadMaxBytes is the upload ceiling when UPLOAD_MAX_BYTES is unset.
const DefaultUploadMaxBytes = 10 << 20

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	GIN_MODE = getEnv("GIN_MODE", "debug")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	DB_DRIVER = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	DB_URL = mustEnv("DB_URL")

	JWT_SECRET = mustEnv("JWT_SECRET")
	ADMIN_PASSWORD_HASH = mustEnv("ADMIN_PASSWORD_HASH")

	UPLOAD_DIR = getEnv("UPLOAD_DIR", "./uploads")
	UPLOAD_MAX_BYTES = getInt64("UPLOAD_MAX_BYTES", DefaultUploadMaxBytes)
	UPLOAD_ALLOW_WEBM = getBool("UPLOAD_ALLOW_WEBM", false)

	// SMTP is optional; without a host, contact notifications are only logged.
	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getEnv("SMTP_PORT", "587")
	SMTP_USER = getEnv("SMTP_USER", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")
	SMTP_FROM = getEnv("SMTP_FROM", "")
	CONTACT_NOTIFY_TO = getEnv("CONTACT_NOTIFY_TO", "")

	REDIS_ADDR = getEnv("REDIS_ADDR", "")
	CONTACT_RATE_LIMIT = int(getInt64("CONTACT_RATE_LIMIT", 5))
	CONTACT_RATE_WINDOW = getDuration("CONTACT_RATE_WINDOW", time.Hour)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatal().Str("key", key).Msg("Missing required environment variable")
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid integer, using default")
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid boolean, using default")
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid duration, using default")
		return fallback
	}
	return v
}
