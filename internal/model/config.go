package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete geolens configuration
type Config struct {
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Reference ReferenceConfig `yaml:"reference" mapstructure:"reference"`
	Resolve   ResolveConfig   `yaml:"resolve" mapstructure:"resolve"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// LLMConfig configures the text-understanding service
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// HTTPConfig configures article fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures the extraction reply cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ReferenceConfig configures the reference store
type ReferenceConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	Path       string `yaml:"path" mapstructure:"path"`
	MaxRecords int    `yaml:"max_records" mapstructure:"max_records"`
}

// ResolveConfig configures entity resolution
type ResolveConfig struct {
	Workers         int    `yaml:"workers" mapstructure:"workers"`
	GeocoderEnabled bool   `yaml:"geocoder_enabled" mapstructure:"geocoder_enabled"`
	GeocoderURL     string `yaml:"geocoder_url,omitempty" mapstructure:"geocoder_url"`
	BoundaryFile    string `yaml:"boundary_file,omitempty" mapstructure:"boundary_file"`
	GazetteerFile   string `yaml:"gazetteer_file,omitempty" mapstructure:"gazetteer_file"`
	SynonymFile     string `yaml:"synonym_file,omitempty" mapstructure:"synonym_file"`
}

// PipelineConfig configures filtering thresholds
type PipelineConfig struct {
	ConfidenceFloor float64 `yaml:"confidence_floor" mapstructure:"confidence_floor"`
	ReuseThreshold  float64 `yaml:"reuse_threshold" mapstructure:"reuse_threshold"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".geolens")

	return &Config{
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			Timeout:           30,
			MaxTokens:         2000,
			MaxRetries:        3,
			RequestsPerSecond: 2,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "geolens/0.1 (+https://github.com/ppiankov/geolens)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(base, "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Reference: ReferenceConfig{
			Enabled:    true,
			Path:       filepath.Join(base, "references.json"),
			MaxRecords: 100,
		},
		Resolve: ResolveConfig{
			Workers:     8,
			GeocoderURL: "https://nominatim.openstreetmap.org",
		},
		Pipeline: PipelineConfig{
			ConfidenceFloor: 0.75,
			ReuseThreshold:  0.7,
		},
		Server: ServerConfig{
			Addr: ":8088",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
