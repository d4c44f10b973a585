package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"prefixle/internal/domain"
	"prefixle/internal/lexical"
	"prefixle/internal/service"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	Lookup      LookupConfig
	Puzzle      PuzzleConfig
	HTTP        HTTPConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// LookupConfig holds word lookup service settings
type LookupConfig struct {
	BaseURL       string
	Delay         time.Duration
	Timeout       time.Duration
	MaxRetries    int
	Backoff       time.Duration
	ProperNounTag string
	PluralTag     string
}

// PuzzleConfig holds game rule settings
type PuzzleConfig struct {
	Key             string
	SyllableMode    domain.SyllableMode
	AchievementMode domain.AchievementMode
	PluralCheck     service.PluralCheck
	RetentionDays   int
}

// HTTPConfig holds the optional JSON API settings. Empty Addr disables the API.
type HTTPConfig struct {
	Addr           string
	RateLimitRPS   int
	RateLimitBurst int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "prefixle"),
			User:     getEnv("DB_USER", "prefixle"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Lookup: LookupConfig{
			BaseURL:       getEnv("LOOKUP_BASE_URL", "https://api.datamuse.com"),
			ProperNounTag: getEnv("LOOKUP_PROPER_TAG", "prop"),
			PluralTag:     getEnv("LOOKUP_PLURAL_TAG", "pl"),
		},
		Puzzle: PuzzleConfig{
			Key:             getEnv("PUZZLE_KEY", "daily"),
			SyllableMode:    domain.SyllableMode(getEnv("PUZZLE_SYLLABLE_MODE", string(domain.SyllablesRotating))),
			AchievementMode: domain.AchievementMode(getEnv("PUZZLE_ACHIEVEMENT_MODE", string(domain.AchievementAbsolute))),
			PluralCheck:     service.PluralCheck(getEnv("PUZZLE_PLURAL_CHECK", string(service.PluralCheckBefore))),
		},
		HTTP: HTTPConfig{
			Addr: os.Getenv("HTTP_ADDR"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	var err error
	if cfg.Lookup.Delay, err = getEnvDuration("LOOKUP_DELAY", lexical.DefaultDelay); err != nil {
		return nil, err
	}
	if cfg.Lookup.Timeout, err = getEnvDuration("LOOKUP_TIMEOUT", lexical.DefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.Lookup.Backoff, err = getEnvDuration("LOOKUP_BACKOFF", lexical.DefaultBackoff); err != nil {
		return nil, err
	}
	if cfg.Lookup.MaxRetries, err = getEnvInt("LOOKUP_MAX_RETRIES", lexical.DefaultMaxRetries); err != nil {
		return nil, err
	}
	if cfg.Puzzle.RetentionDays, err = getEnvInt("PUZZLE_RETENTION_DAYS", service.DefaultRetentionDays); err != nil {
		return nil, err
	}
	if cfg.HTTP.RateLimitRPS, err = getEnvInt("HTTP_RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.HTTP.RateLimitBurst, err = getEnvInt("HTTP_RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Puzzle.SyllableMode {
	case domain.SyllablesRotating, domain.SyllablesFixed:
	default:
		return fmt.Errorf("PUZZLE_SYLLABLE_MODE must be %q or %q", domain.SyllablesRotating, domain.SyllablesFixed)
	}
	switch c.Puzzle.AchievementMode {
	case domain.AchievementAbsolute, domain.AchievementProportional:
	default:
		return fmt.Errorf("PUZZLE_ACHIEVEMENT_MODE must be %q or %q", domain.AchievementAbsolute, domain.AchievementProportional)
	}
	switch c.Puzzle.PluralCheck {
	case service.PluralCheckBefore, service.PluralCheckAfter:
	default:
		return fmt.Errorf("PUZZLE_PLURAL_CHECK must be %q or %q", service.PluralCheckBefore, service.PluralCheckAfter)
	}
	if c.Lookup.MaxRetries < 0 {
		return fmt.Errorf("LOOKUP_MAX_RETRIES must not be negative")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// LimiterConfig converts lookup settings for the lexical client
func (c *Config) LimiterConfig() lexical.LimiterConfig {
	return lexical.LimiterConfig{
		Delay:      c.Lookup.Delay,
		Timeout:    c.Lookup.Timeout,
		MaxRetries: c.Lookup.MaxRetries,
		Backoff:    c.Lookup.Backoff,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return i, nil
}
