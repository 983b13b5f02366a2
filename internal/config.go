package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/glup3/DotsOfLife/internal/lifetime"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	defaultRefreshInterval  = 10 * time.Minute
	defaultReferenceDateKey = "userDateOfBirth"
	defaultReferenceDateTTL = 365 * 24 * time.Hour
)

type Config struct {
	ReferenceDate       string
	DatabaseURL         string
	ReferenceDateKey    string
	ReferenceDateTTL    time.Duration
	RefreshInterval     time.Duration
	LifeExpectancyYears int
	LogLevel            zerolog.Level
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	return loadFromEnv()
}

func loadFromEnv() (*Config, error) {
	configs := &Config{
		ReferenceDate:       os.Getenv("REFERENCE_DATE"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ReferenceDateKey:    getEnv("REFERENCE_DATE_KEY", defaultReferenceDateKey),
		ReferenceDateTTL:    defaultReferenceDateTTL,
		RefreshInterval:     defaultRefreshInterval,
		LifeExpectancyYears: lifetime.DefaultLifeExpectancyYears,
		LogLevel:            zerolog.InfoLevel,
	}

	if configs.ReferenceDate != "" {
		if _, err := lifetime.ParseCalendarDate(configs.ReferenceDate); err != nil {
			return nil, fmt.Errorf("REFERENCE_DATE must be YYYY-MM-DD: %w", err)
		}
	}

	if value := os.Getenv("LIFE_EXPECTANCY_YEARS"); value != "" {
		years, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("LIFE_EXPECTANCY_YEARS must be a number: %w", err)
		}
		if years <= 0 {
			return nil, fmt.Errorf("LIFE_EXPECTANCY_YEARS must be positive, got %d", years)
		}
		configs.LifeExpectancyYears = years
	}

	if value := os.Getenv("REFRESH_INTERVAL"); value != "" {
		interval, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("REFRESH_INTERVAL must be a duration: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", interval)
		}
		configs.RefreshInterval = interval
	}

	if value := os.Getenv("REFERENCE_DATE_TTL"); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("REFERENCE_DATE_TTL must be a duration: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("REFERENCE_DATE_TTL must be positive, got %s", ttl)
		}
		configs.ReferenceDateTTL = ttl
	}

	if value := os.Getenv("LOG_LEVEL"); value != "" {
		level, err := zerolog.ParseLevel(value)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
		}
		configs.LogLevel = level
	}

	return configs, nil
}

func (c *Config) Lifetime() lifetime.Config {
	return lifetime.Config{LifeExpectancyYears: c.LifeExpectancyYears}
}

func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
