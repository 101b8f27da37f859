package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment
type Config struct {
	// HTTPAddr is where the HTTP and WebSocket server listens
	HTTPAddr string

	// RedisAddr enables result persistence when set
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Discord settings, the announcer is off without a token
	DiscordToken         string
	DiscordChannelID     string
	DiscordApplicationID string
	DiscordGuildID       string

	// CatalogPath overrides the embedded deck
	CatalogPath string

	// StrictRules enforces turn order and card ownership
	StrictRules bool

	// ShuffleSeed fixes the deck order when non-zero
	ShuffleSeed int64

	// OriginAllowlist limits browser origins, empty accepts same-origin
	// WebSocket clients only
	OriginAllowlist []string

	LogLevel       string
	LogDevelopment bool
}

// Load reads optional dotenv files then the environment. Missing files are
// ignored; variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		DiscordToken:         getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID:     getEnv("DISCORD_CHANNEL_ID", ""),
		DiscordApplicationID: getEnv("DISCORD_APPLICATION_ID", ""),
		DiscordGuildID:       getEnv("DISCORD_GUILD_ID", ""),
		CatalogPath:          getEnv("CATALOG_PATH", ""),
		OriginAllowlist:      splitList(getEnv("ORIGIN_ALLOWLIST", "")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.StrictRules, err = strconv.ParseBool(getEnv("STRICT_RULES", "false")); err != nil {
		return nil, fmt.Errorf("invalid STRICT_RULES: %w", err)
	}
	if cfg.ShuffleSeed, err = strconv.ParseInt(getEnv("SHUFFLE_SEED", "0"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid SHUFFLE_SEED: %w", err)
	}
	if cfg.LogDevelopment, err = strconv.ParseBool(getEnv("LOG_DEVELOPMENT", "false")); err != nil {
		return nil, fmt.Errorf("invalid LOG_DEVELOPMENT: %w", err)
	}

	return cfg, nil
}

// PersistenceEnabled is true when a Redis address is configured
func (c *Config) PersistenceEnabled() bool {
	return c.RedisAddr != ""
}

// AnnouncerEnabled is true when Discord can be reached
func (c *Config) AnnouncerEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// getEnv gets an environment variable or returns a default value.
// A variable set to the empty string counts as set.
func getEnv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
