// Package config loads application configuration from the environment.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EligibilityRule is the configured viability band for one collateral kind.
type EligibilityRule struct {
	MinYear   int
	MinAmount float64
	MaxAmount float64
}

// Config holds all runtime configuration.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int

	WhatsAppURL      string
	WhatsAppKey      string
	WhatsAppDeviceID string

	PhotoQuota       int
	EligibilityRules map[string]EligibilityRule

	ReminderTiers      []time.Duration
	SweepInterval      time.Duration
	BusinessHoursStart int
	BusinessHoursEnd   int
	BusinessTimezone   string
}

// defaultRules covers the collateral kinds offered in the dialogue menu.
// "Otro" has no rule on purpose: unlisted kinds are never viable.
const defaultRules = "Auto:2015:10000:1000000;Maquinaria:2010:50000:3000000;Reloj:1990:20000:500000"

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	tiers, err := parseTiers(getEnv("REMINDER_TIERS", "6h,48h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_TIERS: %w", err)
	}

	rules, err := parseRules(getEnv("ELIGIBILITY_RULES", defaultRules))
	if err != nil {
		return nil, fmt.Errorf("invalid ELIGIBILITY_RULES: %w", err)
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisTLSInsecure:   strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:     getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:   getIntEnv("ASYNQ_CONCURRENCY", 10),
		WhatsAppURL:        getEnv("WHATSAPP_URL", ""),
		WhatsAppKey:        getEnv("WHATSAPP_KEY", ""),
		WhatsAppDeviceID:   getEnv("WHATSAPP_DEVICE_ID", ""),
		PhotoQuota:         getIntEnv("PHOTO_QUOTA", 4),
		EligibilityRules:   rules,
		ReminderTiers:      tiers,
		SweepInterval:      mustDuration(getEnv("REMINDER_SWEEP_INTERVAL", "15m")),
		BusinessHoursStart: getIntEnv("BUSINESS_HOURS_START", 9),
		BusinessHoursEnd:   getIntEnv("BUSINESS_HOURS_END", 20),
		BusinessTimezone:   getEnv("BUSINESS_TIMEZONE", "America/Mexico_City"),
	}

	if cfg.PhotoQuota < 1 {
		return nil, fmt.Errorf("PHOTO_QUOTA must be positive")
	}
	if cfg.BusinessHoursStart < 0 || cfg.BusinessHoursStart > 23 ||
		cfg.BusinessHoursEnd < 0 || cfg.BusinessHoursEnd > 24 {
		return nil, fmt.Errorf("business hours out of range")
	}

	return cfg, nil
}

// ---- Scoped config interfaces (modules depend on these, not on *Config) ----

// DatabaseConfig exposes database settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// SchedulerConfig exposes asynq/redis settings.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// WhatsAppConfig exposes the outbound gateway settings.
type WhatsAppConfig interface {
	GetWhatsAppURL() string
	GetWhatsAppKey() string
	GetWhatsAppDeviceID() string
}

func (c *Config) GetDatabaseURL() string      { return c.DatabaseURL }
func (c *Config) GetRedisURL() string         { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool   { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string   { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int    { return c.AsynqConcurrency }
func (c *Config) GetWhatsAppURL() string      { return c.WhatsAppURL }
func (c *Config) GetWhatsAppKey() string      { return c.WhatsAppKey }
func (c *Config) GetWhatsAppDeviceID() string { return c.WhatsAppDeviceID }

// ---- Helpers ----

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustDuration(raw string) time.Duration {
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return 15 * time.Minute
	}
	return parsed
}

// parseTiers parses a CSV of durations, e.g. "6h,48h".
func parseTiers(raw string) ([]time.Duration, error) {
	parts := strings.Split(raw, ",")
	tiers := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("tier %q must be positive", part)
		}
		tiers = append(tiers, d)
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("no reminder tiers configured")
	}
	return tiers, nil
}

// parseRules parses "Kind:minYear:minAmount:maxAmount" entries separated by ";".
func parseRules(raw string) (map[string]EligibilityRule, error) {
	rules := make(map[string]EligibilityRule)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fields := strings.Split(entry, ":")
		if len(fields) != 4 {
			return nil, fmt.Errorf("rule %q must have 4 fields", entry)
		}
		minYear, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("rule %q: bad year: %w", entry, err)
		}
		minAmount, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("rule %q: bad min amount: %w", entry, err)
		}
		maxAmount, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("rule %q: bad max amount: %w", entry, err)
		}
		if maxAmount < minAmount {
			return nil, fmt.Errorf("rule %q: max below min", entry)
		}
		rules[strings.TrimSpace(fields[0])] = EligibilityRule{
			MinYear:   minYear,
			MinAmount: minAmount,
			MaxAmount: maxAmount,
		}
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no eligibility rules configured")
	}
	return rules, nil
}
