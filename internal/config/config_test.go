package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so screening.yaml from the repo is not picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 80.0, cfg.Matching.Threshold)
	assert.True(t, cfg.Matching.AutoSchedule)
	assert.Equal(t, Weights{Embedding: 0.4, Skills: 0.4, Experience: 0.2}, cfg.Matching.Weights)
	assert.Equal(t, 30*time.Second, cfg.LLM.GenerationTimeout)
	assert.Equal(t, 15*time.Second, cfg.LLM.EmbeddingTimeout)
	assert.Equal(t, 1, cfg.LLM.MaxRetries)
	assert.Equal(t, "text-embedding-004", cfg.LLM.EmbeddingModel)
	assert.Equal(t, 24, cfg.Auth.JWTExpirationHours)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 9, cfg.Scheduling.BusinessStart)
	assert.Equal(t, 17, cfg.Scheduling.BusinessEnd)
	assert.False(t, cfg.AuthEnabled())
	assert.False(t, cfg.EmailEnabled())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `
port: 9090
database-url: postgres://file
llm:
  generation-timeout: 5s
matching:
  threshold: 70
  weights:
    embedding: 0.4
    skills: 0.3
    experience: 0.3
smtp:
  host: smtp.example.com
  from: hiring@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("GEMINI_API_KEY", "key-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL, "env overrides file")
	assert.Equal(t, "key-from-env", cfg.LLM.APIKey)
	assert.Equal(t, 5*time.Second, cfg.LLM.GenerationTimeout)
	assert.Equal(t, 70.0, cfg.Matching.Threshold)
	assert.Equal(t, 0.3, cfg.Matching.Weights.Skills)
	assert.True(t, cfg.EmailEnabled())
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("port: 7000\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)

	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_ThresholdFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MATCH_THRESHOLD", "65.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 65.5, cfg.Matching.Threshold)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port: 8080,
			LLM:  LLMConfig{MaxRetries: 1},
			Matching: MatchingConfig{
				Threshold: 80,
				Weights:   Weights{Embedding: 0.4, Skills: 0.4, Experience: 0.2},
			},
			Auth:       AuthConfig{JWTExpirationHours: 24},
			Scheduling: SchedConfig{Timezone: "UTC", BusinessStart: 9, BusinessEnd: 17},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(_ *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Port = 0 }, wantErr: "port"},
		{name: "threshold too high", mutate: func(c *Config) { c.Matching.Threshold = 101 }, wantErr: "threshold"},
		{name: "negative weight", mutate: func(c *Config) { c.Matching.Weights.Skills = -0.1 }, wantErr: "non-negative"},
		{name: "zero weights", mutate: func(c *Config) { c.Matching.Weights = Weights{} }, wantErr: "positive sum"},
		{name: "negative retries", mutate: func(c *Config) { c.LLM.MaxRetries = -1 }, wantErr: "max-retries"},
		{name: "jwt expiry", mutate: func(c *Config) {
			c.Auth = AuthConfig{JWTSecret: "x", JWTExpirationHours: 0}
		}, wantErr: "jwt-expiration-hours"},
		{name: "business hours", mutate: func(c *Config) { c.Scheduling.BusinessStart = 18 }, wantErr: "business hours"},
		{name: "timezone", mutate: func(c *Config) { c.Scheduling.Timezone = "Mars/Olympus" }, wantErr: "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{Scheduling: SchedConfig{Timezone: "UTC"}}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Scheduling.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
