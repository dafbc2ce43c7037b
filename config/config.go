package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Guild configuration
	GuildName       string
	DefaultGuildCut float64 // Guild cut percentage applied when /split omits guild_cut

	// Display settings
	LeaderboardLimit int

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Guild settings with defaults
		GuildName:        "Guild",
		DefaultGuildCut:  10.0,
		LeaderboardLimit: 10,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if name := os.Getenv("GUILD_NAME"); name != "" {
		config.GuildName = name
	}
	if cut := os.Getenv("DEFAULT_GUILD_CUT"); cut != "" {
		if parsedCut, err := strconv.ParseFloat(cut, 64); err == nil {
			config.DefaultGuildCut = parsedCut
		}
	}
	if limit := os.Getenv("LEADERBOARD_LIMIT"); limit != "" {
		if parsedLimit, err := strconv.Atoi(limit); err == nil && parsedLimit > 0 {
			config.LeaderboardLimit = parsedLimit
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
