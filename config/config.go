// Package config provides configuration management for the shopping agent.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"shopping-agent/catalog"
)

const (
	DefaultModelBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModelName    = "gemini-2.0-flash"
)

// Config holds all application configuration.
type Config struct {
	GeminiAPIKey   string
	ModelBaseURL   string
	ModelName      string
	CatalogURL     string
	CatalogTimeout time.Duration
	AgentTimeout   time.Duration
	LogLevel       string
	ConsoleWidth   int
	TelegramToken  string
}

// Load reads a .env file from the working directory, if one exists, and then
// the environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	catalogTimeout, err := durationOrDefault("CATALOG_TIMEOUT", catalog.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	agentTimeout, err := durationOrDefault("AGENT_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}
	width, err := intOrDefault("CONSOLE_WIDTH", 100)
	if err != nil {
		return nil, err
	}

	return &Config{
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		ModelBaseURL:   getEnvOrDefault("MODEL_BASE_URL", DefaultModelBaseURL),
		ModelName:      getEnvOrDefault("MODEL_NAME", DefaultModelName),
		CatalogURL:     getEnvOrDefault("CATALOG_URL", catalog.DefaultURL),
		CatalogTimeout: catalogTimeout,
		AgentTimeout:   agentTimeout,
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		ConsoleWidth:   width,
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
	}, nil
}

// Validate checks the settings required to talk to the model.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is not set. Please check your .env file.")
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got %s", c.CatalogTimeout)
	}
	if c.AgentTimeout <= 0 {
		return fmt.Errorf("AGENT_TIMEOUT must be positive, got %s", c.AgentTimeout)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}

func intOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}
