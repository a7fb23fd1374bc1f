package config

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration.
type Config struct {
	APIBaseURL  string
	AccessToken string
	LogLevel    zerolog.Level
}

// Load loads application configuration from environment variables. An empty
// token means the client runs anonymously; operations that need identity
// will say so when they fail.
func Load() *Config {
	return &Config{
		APIBaseURL:  getEnvOrDefault("ARENA_API_URL", "https://api.are.na/v2"),
		AccessToken: os.Getenv("ARENA_API_TOKEN"),
		LogLevel:    getLogLevel(),
	}
}

// Init initializes logging from the loaded configuration.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(c.LogLevel)

	log.Debug().
		Str("api_base_url", c.APIBaseURL).
		Bool("token_present", c.AccessToken != "").
		Str("log_level", c.LogLevel.String()).
		Msg("configuration loaded")
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getLogLevel parses log level from environment or returns default.
func getLogLevel() zerolog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warn", "WARN":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
