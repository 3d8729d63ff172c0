package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	Port             string
	DatabaseURL      string
	SessionSecret    string
	BaseURL          string
	ReminderInterval time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPEmail    string
	SMTPPassword string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:             strings.TrimSpace(os.Getenv("PORT")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionSecret:    strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		BaseURL:          strings.TrimSpace(os.Getenv("BASE_URL")),
		ReminderInterval: parseInterval(strings.TrimSpace(os.Getenv("REMINDER_INTERVAL_SECONDS"))),
		SMTPHost:         strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:         strings.TrimSpace(os.Getenv("SMTP_PORT")),
		SMTPEmail:        strings.TrimSpace(os.Getenv("SMTP_EMAIL")),
		SMTPPassword:     strings.TrimSpace(os.Getenv("SMTP_PASSWORD")),
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "antigravity.db"
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://127.0.0.1:%s", cfg.Port)
	}

	if cfg.ReminderInterval == 0 {
		cfg.ReminderInterval = time.Minute
	}

	if cfg.SMTPHost == "" {
		cfg.SMTPHost = "smtp.gmail.com"
	}
	if cfg.SMTPPort == "" {
		cfg.SMTPPort = "587"
	}

	if cfg.SessionSecret == "" {
		return cfg, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	seconds, err := time.ParseDuration(raw + "s")
	if err != nil || seconds <= 0 {
		return 0
	}
	return seconds
}
