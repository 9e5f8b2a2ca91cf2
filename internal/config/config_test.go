package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ModeSmart, cfg.Processing.Mode)
	assert.Equal(t, 5, cfg.Processing.MinWords)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
processing:
  mode: balanced
  min_words: 7
  quality_threshold: 70
llm:
  model: gemini-2.5-pro
  max_retries: 5
search:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeBalanced, cfg.Processing.Mode)
	assert.Equal(t, 7, cfg.Processing.MinWords)
	assert.Equal(t, 70.0, cfg.Processing.QualityThreshold)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.LLM.MaxRetries)
	assert.False(t, cfg.Search.Enabled)

	// Untouched sections keep their defaults.
	assert.Equal(t, 15, cfg.Processing.MinWordsBalanced)
	assert.Equal(t, 15*time.Second, cfg.Search.Timeout)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("processing: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key-123")
	t.Setenv("PARAFRASE_DB", "/tmp/custom.db")
	t.Setenv("PARAFRASE_SYNONYMS", "/tmp/kamus.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "test-key-123", cfg.LLM.APIKey)
	assert.Equal(t, "/tmp/custom.db", cfg.Storage.DBPath)
	assert.Equal(t, "/tmp/kamus.json", cfg.Synonyms.Path)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown mode", func(c *Config) { c.Processing.Mode = "turbo" }},
		{"zero min words", func(c *Config) { c.Processing.MinWords = 0 }},
		{"tiny chunk budget", func(c *Config) { c.Processing.MaxChunkChars = 100 }},
		{"quality threshold above 100", func(c *Config) { c.Processing.QualityThreshold = 101 }},
		{"negative retries", func(c *Config) { c.LLM.MaxRetries = -1 }},
		{"inverted delay bounds", func(c *Config) { c.LLM.MinDelay = time.Minute; c.LLM.MaxDelay = time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateWorkerFloor(t *testing.T) {
	cfg := Default()
	cfg.Processing.Workers = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Processing.Workers)
}
