package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("REMINDER_INTERVAL_SECONDS", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "antigravity.db", cfg.DatabaseURL)
	require.Equal(t, "http://127.0.0.1:5000", cfg.BaseURL)
	require.Equal(t, time.Minute, cfg.ReminderInterval)
	require.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	require.Equal(t, "587", cfg.SMTPPort)
}

func TestLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_CustomInterval(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("REMINDER_INTERVAL_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.ReminderInterval)
}

func TestParseInterval_RejectsGarbage(t *testing.T) {
	require.Equal(t, time.Duration(0), parseInterval("abc"))
	require.Equal(t, time.Duration(0), parseInterval("-5"))
	require.Equal(t, 90*time.Second, parseInterval("90"))
}
