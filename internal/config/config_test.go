package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MINDPULSE_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "mental_health_cleaned.csv", cfg.Data.MentalHealthFile)
	assert.Equal(t, "stackoverflow_cleaned.csv", cfg.Data.DeveloperFile)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MINDPULSE_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("MINDPULSE_SERVER_PORT", "9090")
	t.Setenv("MINDPULSE_DATA_DIR", "/srv/surveys")
	t.Setenv("MINDPULSE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/surveys", cfg.Data.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 7070
data:
  dir: surveys
  sources:
    who_mental_health: https://example.com/who.csv
`
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0644))
	t.Setenv("MINDPULSE_CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "surveys", cfg.Data.Dir)
	assert.Equal(t, "https://example.com/who.csv", cfg.Data.Sources["who_mental_health"])
	// defaults still applied for fields the file leaves out
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"invalid port", func(c *Config) { c.Server.Port = -1 }, "invalid server port"},
		{"empty data dir", func(c *Config) { c.Data.Dir = "" }, "data directory"},
		{"bad logging output", func(c *Config) { c.Logging.Output = "syslog" }, "invalid logging output"},
		{"bad rate limit", func(c *Config) { c.Security.RateLimit = RateLimitConfig{Enabled: true, RPS: 0} }, "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MINDPULSE_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExportPath(t *testing.T) {
	cfg := &Config{Data: DataConfig{Dir: "data", ExportDir: "exports"}}
	assert.Equal(t, filepath.Join("data", "exports", "x.csv"), cfg.ExportPath("x.csv"))

	cfg.Data.ExportDir = "/tmp/exports"
	assert.Equal(t, filepath.Join("/tmp/exports", "x.csv"), cfg.ExportPath("x.csv"))
}
