// Package config collects the environment configuration for the
// publishing tools. Values are loaded once into an explicit Config so
// the collaborating packages never read ambient process state.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const defaultNotifyAddr = ":8080"

// Config is the environment-derived configuration.
type Config struct {
	// CMS coordinates, required for any non-dry-run publish.
	ServiceDomain string
	APIKey        string

	// Notification service.
	WebhookURL string
	NotifyAddr string

	// Optional AI description assist.
	AnthropicKey string
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceDomain: os.Getenv("MICROCMS_SERVICE_DOMAIN"),
		APIKey:        os.Getenv("MICROCMS_API_KEY"),
		WebhookURL:    os.Getenv("SLACK_WEBHOOK_URL"),
		NotifyAddr:    os.Getenv("NOTIFY_ADDR"),
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
	}
	if cfg.NotifyAddr == "" {
		cfg.NotifyAddr = defaultNotifyAddr
	}
	return cfg
}

// ValidateCMS checks the variables the publish pipeline needs.
func (c *Config) ValidateCMS() error {
	if c.ServiceDomain == "" {
		return errors.New("MICROCMS_SERVICE_DOMAIN environment variable is required")
	}
	if c.APIKey == "" {
		return errors.New("MICROCMS_API_KEY environment variable is required")
	}
	return nil
}

// ValidateNotify checks the variables the notification service needs.
func (c *Config) ValidateNotify() error {
	if c.WebhookURL == "" {
		return errors.New("SLACK_WEBHOOK_URL environment variable is required")
	}
	return nil
}
