// Package config loads qt-bible settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"

	"github.com/pfrederiksen/qt-bible/internal/logger"
	"github.com/pfrederiksen/qt-bible/internal/schedule"
)

// Config holds runtime settings. Command-line flags override these values.
type Config struct {
	CalendarURL         string `env:"QT_CALENDAR_URL" envDefault:"https://www.duranno.com/qt/view/calendar2.asp"`
	DefaultTimezone     string `env:"QT_DEFAULT_TIMEZONE" envDefault:"Asia/Seoul"`
	FetchTimeoutSeconds int    `env:"QT_FETCH_TIMEOUT_SECONDS" envDefault:"30"`
	Port                string `env:"PORT" envDefault:"8080"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"INFO"`

	SNSTopicARN string `env:"QT_SNS_TOPIC_ARN"`

	TwitterAPIKey       string `env:"TWITTER_API_KEY"`
	TwitterAPISecret    string `env:"TWITTER_API_SECRET"`
	TwitterAccessToken  string `env:"TWITTER_ACCESS_TOKEN"`
	TwitterAccessSecret string `env:"TWITTER_ACCESS_SECRET"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env cannot check on its own.
func (c *Config) Validate() error {
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("QT_FETCH_TIMEOUT_SECONDS must be positive, got %d", c.FetchTimeoutSeconds)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if _, err := schedule.LoadZone(c.DefaultTimezone); err != nil {
		return fmt.Errorf("QT_DEFAULT_TIMEZONE: %w", err)
	}
	return nil
}

// FetchTimeout returns the calendar request timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Level returns the configured log level, falling back to INFO.
func (c *Config) Level() logger.Level {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}

// HasTwitterCredentials reports whether all four Twitter credentials are set.
func (c *Config) HasTwitterCredentials() bool {
	return c.TwitterAPIKey != "" && c.TwitterAPISecret != "" &&
		c.TwitterAccessToken != "" && c.TwitterAccessSecret != ""
}
