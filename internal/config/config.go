package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret string

	CORSOrigins string

	MailDriver   string
	ResendAPIKey string
	FromEmail    string
	Domain       string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	NATSEnabled bool
	NATSURL     string
	NATSSubject string
	NATSQueue   string

	InternalToken string

	WatchdogWorkers        int
	WatchdogEventTimeout   time.Duration
	WatchdogLedgerCacheTTL time.Duration

	LogLevel    string
	LogEncoding string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		MailDriver:   getEnv("MAIL_DRIVER", "resend"),
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		Domain:       getEnv("DOMAIN", "localhost:5173"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getIntEnv("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		NATSEnabled: getBoolEnv("NATS_ENABLED", true),
		NATSURL:     getEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: getEnv("NATS_SUBJECT", "ads.events"),
		NATSQueue:   getEnv("NATS_QUEUE", "watchdog"),

		InternalToken: getEnv("INTERNAL_TOKEN", ""),

		WatchdogWorkers:        getIntEnv("WATCHDOG_WORKERS", 8),
		WatchdogEventTimeout:   getDurationEnv("WATCHDOG_EVENT_TIMEOUT", 30*time.Second),
		WatchdogLedgerCacheTTL: getDurationEnv("WATCHDOG_LEDGER_CACHE_TTL", 24*time.Hour),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
