package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Slack credentials
	SlackBotToken string // xoxb- token
	SlackAppToken string // xapp- token for Socket Mode

	// HTTP server for health check and read-only incident API
	HTTPPort int

	// Optional YAML file overriding the built-in detection vocabulary
	VocabularyPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		SlackBotToken:  os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken:  os.Getenv("SLACK_APP_TOKEN"),
		HTTPPort:       getEnvAsIntOrDefault("HTTP_PORT", 3000),
		VocabularyPath: os.Getenv("VOCABULARY_PATH"),
	}

	if cfg.SlackBotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is not set")
	}
	if cfg.SlackAppToken == "" {
		return nil, fmt.Errorf("SLACK_APP_TOKEN is not set")
	}

	return cfg, nil
}

// getEnvAsIntOrDefault returns the value of an environment variable as an integer or a default value
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
