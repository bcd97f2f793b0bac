package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	MigrationsPath string
	RedisAddr      string
	JWTSecret      string

	AdminSessionTTL   time.Duration
	AdminCookieSecure bool
	CSRFKey           string

	NotificationRetention time.Duration
	HousekeepingInterval  time.Duration
	RealtimePollInterval  time.Duration
	RealtimeHeartbeat     time.Duration

	StrictBookingCapacity bool
	OccupancyConcurrency  int

	EmailFrom     string
	EmailFromName string
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CSRFKey:        getEnv("CSRF_KEY", ""),

		EmailFrom:     getEnv("EMAIL_FROM", "noreply@gym24.fit"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "The 24 Fitness Gym"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "1025"),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPass:      getEnv("SMTP_PASS", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.CSRFKey != "" && len(cfg.CSRFKey) != 32 {
		return nil, errors.New("CSRF_KEY must be exactly 32 bytes")
	}

	var err error
	if cfg.AdminSessionTTL, err = getDuration("ADMIN_SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.NotificationRetention, err = getDuration("NOTIFICATION_RETENTION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.HousekeepingInterval, err = getDuration("HOUSEKEEPING_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RealtimePollInterval, err = getDuration("REALTIME_POLL_INTERVAL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RealtimeHeartbeat, err = getDuration("REALTIME_HEARTBEAT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.AdminCookieSecure, err = getBool("ADMIN_COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.StrictBookingCapacity, err = getBool("STRICT_BOOKING_CAPACITY", false); err != nil {
		return nil, err
	}
	if cfg.OccupancyConcurrency, err = getInt("OCCUPANCY_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if cfg.OccupancyConcurrency < 1 {
		cfg.OccupancyConcurrency = 1
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", key, value)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
