package cli

import (
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	viper.SetEnvPrefix("GEOLENS")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	t.Cleanup(viper.Reset)
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Provider != "openai" || cfg.Pipeline.ConfidenceFloor != 0.75 || cfg.Reference.MaxRecords != 100 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("GEOLENS_LLM_MODEL", "gpt-4o")
	t.Setenv("GEOLENS_RESOLVE_GEOCODER_ENABLED", "true")
	t.Setenv("GEOLENS_PIPELINE_CONFIDENCE_FLOOR", "0.6")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("expected model from env, got %q", cfg.LLM.Model)
	}
	if !cfg.Resolve.GeocoderEnabled {
		t.Error("expected geocoder enabled from env")
	}
	if cfg.Pipeline.ConfidenceFloor != 0.6 {
		t.Errorf("expected floor 0.6, got %v", cfg.Pipeline.ConfidenceFloor)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("expected API key from OPENAI_API_KEY, got %q", cfg.LLM.APIKey)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://news.example.org/world/summit", "news.example.org_world_summit"},
		{"http://example.com/", "example.com"},
		{"a b?c", "a_b_c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
