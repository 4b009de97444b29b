package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/pipeline"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// loadConfig layers the config file, GEOLENS_* variables and provider key
// variables over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	bindDefaults(cfg)
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyProviderEnv(cfg)
	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file
func bindDefaults(cfg *model.Config) {
	viper.SetDefault("llm.provider", cfg.LLM.Provider)
	viper.SetDefault("llm.model", cfg.LLM.Model)
	viper.SetDefault("llm.api_key", cfg.LLM.APIKey)
	viper.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	viper.SetDefault("llm.timeout", cfg.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	viper.SetDefault("llm.max_retries", cfg.LLM.MaxRetries)
	viper.SetDefault("llm.requests_per_second", cfg.LLM.RequestsPerSecond)
	viper.SetDefault("http.timeout", cfg.HTTP.Timeout)
	viper.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	viper.SetDefault("http.max_body_bytes", cfg.HTTP.MaxBodyBytes)
	viper.SetDefault("http.respect_robots", cfg.HTTP.RespectRobots)
	viper.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	viper.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	viper.SetDefault("http.no_proxy", cfg.HTTP.NoProxy)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	viper.SetDefault("reference.enabled", cfg.Reference.Enabled)
	viper.SetDefault("reference.path", cfg.Reference.Path)
	viper.SetDefault("reference.max_records", cfg.Reference.MaxRecords)
	viper.SetDefault("resolve.workers", cfg.Resolve.Workers)
	viper.SetDefault("resolve.geocoder_enabled", cfg.Resolve.GeocoderEnabled)
	viper.SetDefault("resolve.geocoder_url", cfg.Resolve.GeocoderURL)
	viper.SetDefault("resolve.boundary_file", cfg.Resolve.BoundaryFile)
	viper.SetDefault("resolve.gazetteer_file", cfg.Resolve.GazetteerFile)
	viper.SetDefault("resolve.synonym_file", cfg.Resolve.SynonymFile)
	viper.SetDefault("pipeline.confidence_floor", cfg.Pipeline.ConfidenceFloor)
	viper.SetDefault("pipeline.reuse_threshold", cfg.Pipeline.ReuseThreshold)
	viper.SetDefault("server.addr", cfg.Server.Addr)
	viper.SetDefault("log.level", cfg.Log.Level)
}

// applyProviderEnv fills the API key from the provider's usual variable
// when the config leaves it empty
func applyProviderEnv(cfg *model.Config) {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
}

// newLogger builds a production logger, or a development one with --verbose
func newLogger(cfg *model.Config) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	zcfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// setup loads config and wires the pipeline
func setup() (*model.Config, *zap.Logger, *pipeline.Components, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	components, err := pipeline.NewFromConfig(cfg, logger, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, components, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// printTargets writes one line per target to stderr
func printTargets(set *model.GeoTargetSet) {
	if set.FromReference != "" {
		fmt.Fprintf(os.Stderr, "↺ Reused stored analysis %s of a similar article\n", set.FromReference)
	}
	for _, t := range set.Targets {
		mark := "✓"
		detail := t.Code()
		if t.Kind == model.KindPlace && t.Resolved != nil && t.Resolved.Coordinates != nil {
			c := t.Resolved.Coordinates
			detail = fmt.Sprintf("[%.4f, %.4f]", c[0], c[1])
		}
		if t.Resolved != nil && t.Resolved.IsDecomposition() {
			detail = strings.Join(t.Resolved.Entities, "+")
		}
		if t.NeedsReview() {
			mark = "?"
			detail = t.Resolved.Suggestion
		}
		fmt.Fprintf(os.Stderr, "%s %-7s %-28s %.2f  %s\n", mark, t.Kind, t.Name, t.Confidence, detail)
	}
}
