package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token              string
	DatabaseURL        string
	MigrationsPath     string
	GuildID            string
	DefaultLocale      string
	Environment        string
	ReminderWindow     time.Duration
	ReminderInterval   time.Duration
	CompletionInterval time.Duration
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment
	// (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		Token:              os.Getenv("DISCORD_TOKEN"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		MigrationsPath:     envOr("MIGRATIONS_PATH", "migrations"),
		GuildID:            os.Getenv("GUILD_ID"),
		DefaultLocale:      envOr("DEFAULT_LOCALE", "ja"),
		Environment:        envOr("ENVIRONMENT", "dev"),
		ReminderWindow:     time.Duration(envIntOr("REMINDER_MINUTES", 30)) * time.Minute,
		ReminderInterval:   time.Duration(envIntOr("REMINDER_CHECK_MINUTES", 5)) * time.Minute,
		CompletionInterval: time.Duration(envIntOr("COMPLETION_CHECK_MINUTES", 10)) * time.Minute,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// validate applies all business rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: DISCORD_TOKEN is required and cannot be empty")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/withgames?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if c.GuildID != "" {
		for _, r := range c.GuildID {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: GUILD_ID must be a Discord snowflake (digits only)")
			}
		}
	}

	return nil
}

// IsDevelopment reports whether the bot runs with the dev environment
// settings (verbose logging).
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev"
}
