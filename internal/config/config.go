// Package config loads the server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process settings
type Config struct {
	// ListenAddr is the HTTP listen address
	ListenAddr string

	// Redis archive; an empty address disables archiving
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ArchiveTTL    time.Duration

	// Discord announcements; both values are needed to enable them
	DiscordToken     string
	DiscordChannelID string

	// DiceSeed fixes the dice and room id draws when non-zero
	DiceSeed int64

	// SendBuffer is the per-connection outbound queue length
	SendBuffer int
}

// Load reads files (default ".env") into the environment without overriding
// variables that are already set, then builds the Config. Missing files are
// not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.ArchiveTTL, err = time.ParseDuration(getEnv("ARCHIVE_TTL", "168h")); err != nil {
		return nil, fmt.Errorf("invalid ARCHIVE_TTL: %w", err)
	}
	if cfg.DiceSeed, err = strconv.ParseInt(getEnv("DICE_SEED", "0"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid DICE_SEED: %w", err)
	}
	if cfg.SendBuffer, err = strconv.Atoi(getEnv("SEND_BUFFER", "64")); err != nil || cfg.SendBuffer <= 0 {
		return nil, fmt.Errorf("invalid SEND_BUFFER %q", os.Getenv("SEND_BUFFER"))
	}

	return cfg, nil
}

// ArchiveEnabled reports whether reports should go to redis
func (c *Config) ArchiveEnabled() bool {
	return c.RedisAddr != ""
}

// DiscordEnabled reports whether reports should be posted to Discord
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
