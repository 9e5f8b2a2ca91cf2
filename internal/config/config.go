// Package config holds all parafrase configuration. Configuration is loaded
// once at startup from an optional YAML file merged over defaults, then
// overridden by environment variables. A missing synonym resource is a fatal
// configuration error: the local engine cannot run without it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Routing modes.
const (
	ModeSmart    = "smart"
	ModeBalanced = "balanced"
)

// Config holds all parafrase configuration.
type Config struct {
	// Processing settings
	Processing ProcessingConfig `yaml:"processing"`

	// Gemini refinement service
	LLM LLMConfig `yaml:"llm"`

	// Search-context provider
	Search SearchConfig `yaml:"search"`

	// Synonym resource
	Synonyms SynonymConfig `yaml:"synonyms"`

	// Progress persistence
	Storage StorageConfig `yaml:"storage"`
}

// ProcessingConfig configures the core pipeline.
type ProcessingConfig struct {
	// Mode selects the routing strategy: "smart" (risk thresholds) or
	// "balanced" (approximately even local/AI split across a batch).
	Mode string `yaml:"mode"`

	// MinWords is the suitability floor for smart mode.
	MinWords int `yaml:"min_words"`

	// MinWordsBalanced is the higher suitability floor for balanced mode.
	MinWordsBalanced int `yaml:"min_words_balanced"`

	// MaxChunkChars bounds chunk size for oversized units.
	MaxChunkChars int `yaml:"max_chunk_chars"`

	// MaxTextChars rejects pathologically large single requests.
	MaxTextChars int `yaml:"max_text_chars"`

	// QualityThreshold below which a unit is escalated once.
	QualityThreshold float64 `yaml:"quality_threshold"`

	// Workers bounds the concurrent single-unit worker pool.
	Workers int `yaml:"workers"`
}

// LLMConfig configures the Gemini refinement adapter.
type LLMConfig struct {
	APIKey     string        `yaml:"api_key"`
	Model      string        `yaml:"model"`
	MaxRetries int           `yaml:"max_retries"`
	Timeout    time.Duration `yaml:"timeout"`

	// Adaptive inter-call delay bounds.
	BaseDelay time.Duration `yaml:"base_delay"`
	MinDelay  time.Duration `yaml:"min_delay"`
	MaxDelay  time.Duration `yaml:"max_delay"`
}

// SearchConfig configures the search-context provider.
type SearchConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Region     string        `yaml:"region"`
	Language   string        `yaml:"language"`
	MaxResults int           `yaml:"max_results"`
	Timeout    time.Duration `yaml:"timeout"`

	// Snippets outside these length bounds are discarded.
	MinSnippetLength int `yaml:"min_snippet_length"`
	MaxSnippetLength int `yaml:"max_snippet_length"`
}

// SynonymConfig locates the synonym resource.
type SynonymConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig locates the progress database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Processing: ProcessingConfig{
			Mode:             ModeSmart,
			MinWords:         5,
			MinWordsBalanced: 15,
			MaxChunkChars:    3000,
			MaxTextChars:     50000,
			QualityThreshold: 55,
			Workers:          4,
		},
		LLM: LLMConfig{
			Model:      "gemini-2.0-flash",
			MaxRetries: 3,
			Timeout:    60 * time.Second,
			BaseDelay:  2 * time.Second,
			MinDelay:   500 * time.Millisecond,
			MaxDelay:   30 * time.Second,
		},
		Search: SearchConfig{
			Enabled:          true,
			Region:           "id-id",
			Language:         "id",
			MaxResults:       5,
			Timeout:          15 * time.Second,
			MinSnippetLength: 100,
			MaxSnippetLength: 2000,
		},
		Synonyms: SynonymConfig{
			Path: "sinonim.json",
		},
		Storage: StorageConfig{
			DBPath: ".parafrase/progress.db",
		},
	}
}

// Load reads the YAML file at path (if non-empty) over defaults and applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if path := os.Getenv("PARAFRASE_DB"); path != "" {
		c.Storage.DBPath = path
	}
	if path := os.Getenv("PARAFRASE_SYNONYMS"); path != "" {
		c.Synonyms.Path = path
	}
}

// Validate checks ranges and required fields. It does not verify the synonym
// file exists; that happens when the resource is opened so tests can inject
// in-memory resources.
func (c *Config) Validate() error {
	switch c.Processing.Mode {
	case ModeSmart, ModeBalanced:
	default:
		return fmt.Errorf("unknown processing mode %q (want smart or balanced)", c.Processing.Mode)
	}
	if c.Processing.MinWords < 1 {
		return fmt.Errorf("processing.min_words must be positive, got %d", c.Processing.MinWords)
	}
	if c.Processing.MaxChunkChars < 200 {
		return fmt.Errorf("processing.max_chunk_chars too small: %d", c.Processing.MaxChunkChars)
	}
	if c.Processing.QualityThreshold < 0 || c.Processing.QualityThreshold > 100 {
		return fmt.Errorf("processing.quality_threshold out of range: %v", c.Processing.QualityThreshold)
	}
	if c.Processing.Workers < 1 {
		c.Processing.Workers = 1
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must be non-negative, got %d", c.LLM.MaxRetries)
	}
	if c.LLM.MinDelay > c.LLM.MaxDelay {
		return fmt.Errorf("llm.min_delay %v exceeds llm.max_delay %v", c.LLM.MinDelay, c.LLM.MaxDelay)
	}
	return nil
}
