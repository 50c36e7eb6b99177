package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"bookinghook/internal/pkg/fecha"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultDatabaseURL     = "file:bookinghook.db"
	defaultCheckinSecret   = "change-me-checkin-secret"
	defaultCheckinBaseURL  = "https://app.example.com/checkin?token="
	defaultTimezone        = "Europe/Berlin"
	defaultDisplayLocale   = "es"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultDedupTTL        = "2m"
	defaultRecordRetention = "2160h"
	defaultLogLevel        = "info"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel logrus.Level

	DatabaseURL     string
	RecordRetention time.Duration

	CheckinSecret   string
	CheckinBaseURL  string
	DefaultTimezone string
	DisplayLocale   string

	// WebhookSecret is compared with the X-Webhook-Secret header. Empty disables the check.
	WebhookSecret string
	JWTSecret     string

	RedisAddr     string
	RedisPassword string
	DedupTTL      time.Duration

	CORSAllowedOrigins []string
}

// LoadDotEnv loads .env files when present. Real environment variables win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logrus.WithError(err).WithField("file", f).Warn("failed to load env file")
		}
	}
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.CheckinSecret = getEnv("CHECKIN_SECRET", defaultCheckinSecret)
	cfg.CheckinBaseURL = strings.TrimSpace(getEnv("CHECKIN_BASE_URL", defaultCheckinBaseURL))
	cfg.DefaultTimezone = strings.TrimSpace(getEnv("DEFAULT_TIMEZONE", defaultTimezone))
	cfg.DisplayLocale = strings.TrimSpace(getEnv("DISPLAY_LOCALE", defaultDisplayLocale))
	cfg.WebhookSecret = os.Getenv("WEBHOOK_SECRET")
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if extra := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); extra != "" {
		cfg.CORSAllowedOrigins = strings.Split(extra, ",")
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.DedupTTL, err = parseDurationEnv("DEDUP_TTL", defaultDedupTTL)
	if err != nil {
		return nil, err
	}
	cfg.RecordRetention, err = parseDurationEnv("RECORD_RETENTION", defaultRecordRetention)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"env":            cfg.AppEnv,
		"timezone":       cfg.DefaultTimezone,
		"locale":         cfg.DisplayLocale,
		"signature_hook": cfg.WebhookSecret != "",
		"redis_guard":    cfg.RedisAddr != "",
	}).Info("config loaded")

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.CheckinSecret == "" {
		return fmt.Errorf("CHECKIN_SECRET must not be empty")
	}
	if cfg.CheckinBaseURL == "" {
		return fmt.Errorf("CHECKIN_BASE_URL must not be empty")
	}
	if _, ok := fecha.LoadZone(cfg.DefaultTimezone); !ok {
		return fmt.Errorf("DEFAULT_TIMEZONE %q is not a valid IANA zone", cfg.DefaultTimezone)
	}
	if cfg.DedupTTL <= 0 {
		return fmt.Errorf("DEDUP_TTL must be > 0")
	}
	if cfg.RecordRetention <= 0 {
		return fmt.Errorf("RECORD_RETENTION must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.CheckinSecret, defaultCheckinSecret) {
			return fmt.Errorf("in prod/release CHECKIN_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.CheckinBaseURL, "https://") {
			return fmt.Errorf("in prod/release CHECKIN_BASE_URL must use https")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
