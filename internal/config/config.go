package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	Environment string
	AppURL      string
	JWTSecret   string
	CORSOrigins []string

	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBSSLMode     string
	DBAutoMigrate bool

	RedisAddr string

	KafkaBroker     string
	ConsumerGroupID string
	OutboxPoll      time.Duration

	EmailFrom    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	Timezone string

	ScheduledStart   string
	GraceMinutes     int
	LatePenaltyDays  decimal.Decimal
	AutoLatePenalty  bool
	MedicalAllowance decimal.Decimal
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("APP_ENV", "development"),
		AppURL:      getEnv("APP_URL", "http://localhost:3000"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "leavesync"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		KafkaBroker:     getEnv("KAFKA_BROKER", ""),
		ConsumerGroupID: getEnv("KAFKA_CONSUMER_GROUP", "leavesync-notifier"),
		OutboxPoll:      getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),

		EmailFrom:    getEnv("EMAIL_FROM", "LeaveSync <no-reply@leavesync.local>"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", true),

		Timezone: getEnv("APP_TIMEZONE", "Local"),

		ScheduledStart:   getEnv("ATTENDANCE_SCHEDULED_START", "09:00"),
		GraceMinutes:     getEnvInt("ATTENDANCE_GRACE_MINUTES", 15),
		LatePenaltyDays:  getEnvDecimal("ATTENDANCE_LATE_PENALTY_DAYS", decimal.RequireFromString("0.25")),
		AutoLatePenalty:  getEnvBool("ATTENDANCE_AUTO_LATE_PENALTY", false),
		MedicalAllowance: getEnvDecimal("MEDICAL_LEAVE_ALLOWANCE_DAYS", decimal.NewFromInt(14)),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}
	if _, err := time.Parse("15:04", c.ScheduledStart); err != nil {
		return fmt.Errorf("ATTENDANCE_SCHEDULED_START must be HH:MM")
	}
	if c.GraceMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_GRACE_MINUTES must not be negative")
	}
	if c.LatePenaltyDays.IsNegative() {
		return fmt.Errorf("ATTENDANCE_LATE_PENALTY_DAYS must not be negative")
	}
	if c.MedicalAllowance.IsNegative() {
		return fmt.Errorf("MEDICAL_LEAVE_ALLOWANCE_DAYS must not be negative")
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) SMTPEnabled() bool {
	return strings.TrimSpace(c.SMTPHost) != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return fallback
	}
	return parsed
}
