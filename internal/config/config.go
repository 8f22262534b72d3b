// Package config loads service configuration from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultFileName is looked up in the working directory when no --config path is given.
const DefaultFileName = "screening.yaml"

// Config is the full service configuration.
type Config struct {
	Port        int            `mapstructure:"port"`
	DatabaseURL string         `mapstructure:"database-url"`
	LLM         LLMConfig      `mapstructure:"llm"`
	Matching    MatchingConfig `mapstructure:"matching"`
	Auth        AuthConfig     `mapstructure:"auth"`
	SMTP        SMTPConfig     `mapstructure:"smtp"`
	Scheduling  SchedConfig    `mapstructure:"scheduling"`
}

// LLMConfig configures the generative and embedding providers.
type LLMConfig struct {
	APIKey            string        `mapstructure:"api-key"`
	Model             string        `mapstructure:"model"`
	EmbeddingModel    string        `mapstructure:"embedding-model"`
	GenerationTimeout time.Duration `mapstructure:"generation-timeout"`
	EmbeddingTimeout  time.Duration `mapstructure:"embedding-timeout"`
	MaxRetries        int           `mapstructure:"max-retries"`
	MaxLogLength      int           `mapstructure:"max-log-length"`
}

// MatchingConfig configures scoring and automatic interview scheduling.
type MatchingConfig struct {
	Threshold    float64 `mapstructure:"threshold"`
	AutoSchedule bool    `mapstructure:"auto-schedule"`
	Weights      Weights `mapstructure:"weights"`
}

// Weights are the relative contributions of the score components.
type Weights struct {
	Embedding  float64 `mapstructure:"embedding"`
	Skills     float64 `mapstructure:"skills"`
	Experience float64 `mapstructure:"experience"`
}

// AuthConfig configures bearer-token authentication. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt-secret"`
	JWTExpirationHours int    `mapstructure:"jwt-expiration-hours"`
}

// SMTPConfig configures invitation delivery. An empty host disables email.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// SchedConfig configures the interview drafter.
type SchedConfig struct {
	Timezone      string `mapstructure:"timezone"`
	BusinessStart int    `mapstructure:"business-start"`
	BusinessEnd   int    `mapstructure:"business-end"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"port":                      "PORT",
	"database-url":              "DATABASE_URL",
	"llm.api-key":               "GEMINI_API_KEY",
	"llm.model":                 "GEMINI_MODEL",
	"matching.threshold":        "MATCH_THRESHOLD",
	"matching.auto-schedule":    "MATCH_AUTO_SCHEDULE",
	"auth.jwt-secret":           "JWT_SECRET",
	"auth.jwt-expiration-hours": "JWT_EXPIRATION_HOURS",
	"smtp.host":                 "SMTP_HOST",
	"smtp.port":                 "SMTP_PORT",
	"smtp.user":                 "SMTP_USER",
	"smtp.password":             "SMTP_PASSWORD",
	"smtp.from":                 "SMTP_FROM",
	"scheduling.timezone":       "SCHEDULING_TIMEZONE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.embedding-model", "text-embedding-004")
	v.SetDefault("llm.generation-timeout", 30*time.Second)
	v.SetDefault("llm.embedding-timeout", 15*time.Second)
	v.SetDefault("llm.max-retries", 1)
	v.SetDefault("llm.max-log-length", 300)
	v.SetDefault("matching.threshold", 80.0)
	v.SetDefault("matching.auto-schedule", true)
	v.SetDefault("matching.weights.embedding", 0.4)
	v.SetDefault("matching.weights.skills", 0.4)
	v.SetDefault("matching.weights.experience", 0.2)
	v.SetDefault("auth.jwt-expiration-hours", 24)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("scheduling.timezone", "Local")
	v.SetDefault("scheduling.business-start", 9)
	v.SetDefault("scheduling.business-end", 17)
}

// Load reads configuration. An explicit path must exist; otherwise screening.yaml
// in the working directory is used when present. Environment variables win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
// Required credentials are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 100 {
		return fmt.Errorf("config error: 'matching.threshold' must be within [0,100], got %v", c.Matching.Threshold)
	}
	w := c.Matching.Weights
	if w.Embedding < 0 || w.Skills < 0 || w.Experience < 0 {
		return fmt.Errorf("config error: 'matching.weights' must be non-negative")
	}
	if w.Embedding+w.Skills+w.Experience <= 0 {
		return fmt.Errorf("config error: 'matching.weights' must have a positive sum")
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("config error: 'llm.max-retries' must be non-negative")
	}
	if c.Auth.JWTSecret != "" && c.Auth.JWTExpirationHours < 1 {
		return fmt.Errorf("config error: 'auth.jwt-expiration-hours' must be at least 1 hour, got %d", c.Auth.JWTExpirationHours)
	}
	s := c.Scheduling
	if s.BusinessStart < 0 || s.BusinessEnd > 24 || s.BusinessStart >= s.BusinessEnd {
		return fmt.Errorf("config error: business hours %d-%d are invalid", s.BusinessStart, s.BusinessEnd)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config error: 'scheduling.timezone': %w", err)
	}
	return nil
}

// Location resolves the scheduling timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Scheduling.Timezone
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

// EmailEnabled reports whether SMTP delivery is configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}

// AuthEnabled reports whether bearer-token auth is configured.
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}
