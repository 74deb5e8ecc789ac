package model

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all landwatch configuration
type Config struct {
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Ingest       IngestConfig       `yaml:"ingest" mapstructure:"ingest"`
	Search       SearchConfig       `yaml:"search" mapstructure:"search"`
	Corpus       CorpusConfig       `yaml:"corpus" mapstructure:"corpus"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Metrics      MetricsConfig      `yaml:"metrics" mapstructure:"metrics"`
}

// LLMConfig configures the provider behind OCR, translation, extraction and search
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
	HTTPProxy   string  `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy  string  `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy     string  `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// IngestConfig controls batch ingestion
type IngestConfig struct {
	Concurrency int           `yaml:"concurrency" mapstructure:"concurrency"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Translate   bool          `yaml:"translate" mapstructure:"translate"`
}

// SearchConfig controls corpus search
type SearchConfig struct {
	TopN int `yaml:"top_n" mapstructure:"top_n"`
}

// CorpusConfig locates the corpus snapshot
type CorpusConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig controls caching of OCR and translation results
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitingConfig bounds calls per capability
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

// MetricsConfig controls the metrics textfile dump
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			Timeout:     120,
			MaxTokens:   4096,
			Temperature: 0,
		},
		Ingest: IngestConfig{
			Concurrency: 1,
			Timeout:     30 * time.Minute,
			Translate:   true,
		},
		Search: SearchConfig{
			TopN: 3,
		},
		Corpus: CorpusConfig{
			Path: "~/.landwatch/property_database.json",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "~/.landwatch/cache",
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			Burst:             2,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate checks the configuration for values no component can work with
func (c Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "", "openai", "anthropic", "claude", "ollama":
	default:
		return fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", c.LLM.Provider)
	}
	if c.Ingest.Concurrency < 1 {
		return fmt.Errorf("ingest.concurrency must be at least 1, got %d", c.Ingest.Concurrency)
	}
	if c.Search.TopN < 1 {
		return fmt.Errorf("search.top_n must be at least 1, got %d", c.Search.TopN)
	}
	if c.RateLimiting.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limiting.requests_per_second must not be negative")
	}
	return nil
}
