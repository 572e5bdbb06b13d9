// Package config handles reading and writing .mockround/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .mockround/config.yaml.
type Config struct {
	Version       int                `yaml:"version"`
	UserID        string             `yaml:"user_id"`
	LogLevel      string             `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	API           APIConfig          `yaml:"api"`
	Interview     InterviewConfig    `yaml:"interview"`
	Notifications NotificationConfig `yaml:"notifications"`
	Server        ServerConfig       `yaml:"server"`
	Cleanup       CleanupConfig      `yaml:"cleanup"`
}

// APIConfig points the client at the question service.
type APIConfig struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	TimeoutMs int    `yaml:"timeout_ms" validate:"gt=0"`
}

// InterviewConfig holds the defaults offered on the setup form.
type InterviewConfig struct {
	Difficulty       string   `yaml:"difficulty" validate:"oneof=easy medium hard"`
	DurationSeconds  int      `yaml:"duration_seconds" validate:"gt=0"`
	Topics           []string `yaml:"topics"`
	TotalQuestions   int      `yaml:"total_questions" validate:"gt=0"`
	HRTotalQuestions int      `yaml:"hr_total_questions" validate:"gt=0"`
	RedirectDelayMs  int      `yaml:"redirect_delay_ms" validate:"gte=0"`
}

// NotificationConfig controls the notification banner.
type NotificationConfig struct {
	TTLMs int `yaml:"ttl_ms" validate:"gt=0"`
}

// ServerConfig configures `mockround serve`.
type ServerConfig struct {
	Addr           string  `yaml:"addr" validate:"required"`
	DBPath         string  `yaml:"db_path" validate:"required"`
	GeminiModel    string  `yaml:"gemini_model"`
	GeminiAPIKey   string  `yaml:"-"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" validate:"gt=0"`
}

// CleanupConfig controls `mockround clean`.
type CleanupConfig struct {
	MaxAgeDays int `yaml:"max_age_days" validate:"gte=0"`
}

// Environment variables that override file values.
const (
	EnvAPIURL    = "MOCKROUND_API_URL"
	EnvUserID    = "MOCKROUND_USER_ID"
	EnvDBPath    = "MOCKROUND_DB_PATH"
	EnvAddr      = "MOCKROUND_ADDR"
	EnvLogLevel  = "MOCKROUND_LOG_LEVEL"
	EnvGeminiKey = "GEMINI_API_KEY"
)

const configDir = ".mockround"
const configFile = "config.yaml"

// Path returns the config file location for the given project directory.
func Path(dir string) string {
	return filepath.Join(dir, configDir, configFile)
}

// ReadConfig reads .mockround/config.yaml from the given directory.
// dir is the working directory (not .mockround/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Load reads the config file if present, falls back to defaults if not, then
// applies environment overrides and validates the result.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to .mockround/config.yaml in the given directory.
// Creates the .mockround/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		LogLevel: "info",
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			TimeoutMs: 30000,
		},
		Interview: InterviewConfig{
			Difficulty:       "medium",
			DurationSeconds:  1800,
			Topics:           []string{},
			TotalQuestions:   10,
			HRTotalQuestions: 8,
			RedirectDelayMs:  2000,
		},
		Notifications: NotificationConfig{
			TTLMs: 5000,
		},
		Server: ServerConfig{
			Addr:           ":8000",
			DBPath:         ".mockround/mockround.db",
			GeminiModel:    "gemini-2.5-flash",
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Cleanup: CleanupConfig{
			MaxAgeDays: 30,
		},
	}
}

// ApplyEnv overrides file values with any non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := getenv(EnvUserID); v != "" {
		c.UserID = v
	}
	if v := getenv(EnvDBPath); v != "" {
		c.Server.DBPath = v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvGeminiKey); v != "" {
		c.Server.GeminiAPIKey = v
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// APITimeout is the per-call deadline for the question service.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}

// RedirectDelay is how long an initialization error stays on screen.
func (c *Config) RedirectDelay() time.Duration {
	return time.Duration(c.Interview.RedirectDelayMs) * time.Millisecond
}

// NotificationTTL is how long a notification stays visible.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.Notifications.TTLMs) * time.Millisecond
}

// Set updates a single key given in dotted form, as used by `mockround config set`.
func (c *Config) Set(key, value string) error {
	atoi := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", key, value)
		}
		return n, nil
	}
	switch key {
	case "user_id":
		c.UserID = value
	case "log_level":
		c.LogLevel = value
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout_ms":
		n, err := atoi()
		if err != nil {
			return err
		}
		c.API.TimeoutMs = n
	case "interview.difficulty":
		c.Interview.Difficulty = value
	case "interview.duration_seconds":
		n, err := atoi()
		if err != nil {
			return err
		}
		c.Interview.DurationSeconds = n
	case "interview.total_questions":
		n, err := atoi()
		if err != nil {
			return err
		}
		c.Interview.TotalQuestions = n
	case "server.addr":
		c.Server.Addr = value
	case "server.db_path":
		c.Server.DBPath = value
	case "cleanup.max_age_days":
		n, err := atoi()
		if err != nil {
			return err
		}
		c.Cleanup.MaxAgeDays = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return c.Validate()
}
