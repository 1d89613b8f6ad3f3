package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix of every MindPulse environment variable
const envPrefix = "MINDPULSE"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/mindpulse.log"`
}

// DataConfig locates the survey datasets and external sources
type DataConfig struct {
	Dir              string            `yaml:"dir" envconfig:"DIR" default:"data"`
	MentalHealthFile string            `yaml:"mental_health_file" envconfig:"MENTAL_HEALTH_FILE" default:"mental_health_cleaned.csv"`
	DeveloperFile    string            `yaml:"developer_file" envconfig:"DEVELOPER_FILE" default:"stackoverflow_cleaned.csv"`
	ExportDir        string            `yaml:"export_dir" envconfig:"EXPORT_DIR" default:"exports"`
	Sources          map[string]string `yaml:"sources" envconfig:"SOURCES"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int           `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE" default:"1024"`
	PingPeriod      time.Duration `yaml:"ping_period" envconfig:"PING_PERIOD" default:"30s"`
	PongWait        time.Duration `yaml:"pong_wait" envconfig:"PONG_WAIT" default:"60s"`
}

// Load loads configuration from environment variables and, when present, the
// YAML config file. File values override the environment-derived ones for the
// fields the file sets.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// configFilePath returns the config file location, overridable via
// MINDPULSE_CONFIG_FILE.
func configFilePath() string {
	if path := os.Getenv(envPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays the file configuration onto the environment-derived one.
// Only fields the file actually sets are copied, so envconfig defaults
// survive for everything else.
func merge(fileCfg, envCfg Config) Config {
	out := envCfg
	if fileCfg.Server.Port != 0 {
		out.Server.Port = fileCfg.Server.Port
	}
	if fileCfg.Logging.Level != "" {
		out.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Output != "" {
		out.Logging.Output = fileCfg.Logging.Output
	}
	if fileCfg.Data.Dir != "" {
		out.Data.Dir = fileCfg.Data.Dir
	}
	if fileCfg.Data.MentalHealthFile != "" {
		out.Data.MentalHealthFile = fileCfg.Data.MentalHealthFile
	}
	if fileCfg.Data.DeveloperFile != "" {
		out.Data.DeveloperFile = fileCfg.Data.DeveloperFile
	}
	if len(fileCfg.Data.Sources) > 0 {
		out.Data.Sources = fileCfg.Data.Sources
	}
	if len(fileCfg.Security.AllowedOrigins) > 0 {
		out.Security.AllowedOrigins = fileCfg.Security.AllowedOrigins
	}
	return out
}

// validate checks the configuration for usable values
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data directory must be set")
	}
	switch c.Logging.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive when enabled")
	}
	return nil
}

// ExportPath resolves a file name inside the export directory
func (c *Config) ExportPath(name string) string {
	if filepath.IsAbs(c.Data.ExportDir) {
		return filepath.Join(c.Data.ExportDir, name)
	}
	return filepath.Join(c.Data.Dir, c.Data.ExportDir, name)
}
