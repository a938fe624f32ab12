// Package config loads runtime settings from the environment. Every
// value has a working default so a bare `go run` comes up locally.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr string
	DSN        string

	JWTSecret string
	TokenTTL  time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AdminEmail   string

	AuthRatePerMin   int
	PublicRatePerMin int
	UserRatePerMin   int

	AvailabilityRefresh time.Duration
	DispatcherWorkers   int
	DispatcherQueue     int
}

func Load() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		DSN:        getEnv("DB_DSN", "root:password@tcp(127.0.0.1:3306)/orders?parseTime=true"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 72)) * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@orders.local"),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		AuthRatePerMin:   getEnvAsInt("AUTH_RATE_PER_MIN", 3),
		PublicRatePerMin: getEnvAsInt("PUBLIC_RATE_PER_MIN", 60),
		UserRatePerMin:   getEnvAsInt("USER_RATE_PER_MIN", 100),

		AvailabilityRefresh: time.Duration(getEnvAsInt("AVAILABILITY_REFRESH_MINUTES", 120)) * time.Minute,
		DispatcherWorkers:   getEnvAsInt("DISPATCHER_WORKERS", 4),
		DispatcherQueue:     getEnvAsInt("DISPATCHER_QUEUE_SIZE", 64),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
