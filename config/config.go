package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Provider identifiers accepted by FITTIP_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the environment-sourced configuration, validated once at
// process start.
type Config struct {
	ListenAddr string

	// LLM provider selection and credentials.
	Provider      string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ModelName     string

	// Tip cache and scheduling.
	CacheFile       string
	HistorySize     int
	DailyTipHourUTC int

	// Generation limits.
	MinCallInterval time.Duration
	GenTimeout      time.Duration
	MaxTipLength    int
}

// Load reads FITTIP_* environment variables, applies defaults and validates.
// A missing API key for the selected provider is a startup failure.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FITTIP")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("cache_file", "cache.json")
	v.SetDefault("history_size", 7)
	v.SetDefault("daily_tip_hour_utc", 7)
	v.SetDefault("min_call_interval_seconds", 3)
	v.SetDefault("gen_timeout_seconds", 10)
	v.SetDefault("max_tip_length", 280)

	cfg := &Config{
		ListenAddr:      v.GetString("listen_addr"),
		Provider:        v.GetString("provider"),
		GeminiAPIKey:    v.GetString("gemini_api_key"),
		OpenAIAPIKey:    v.GetString("openai_api_key"),
		OpenAIBaseURL:   v.GetString("openai_base_url"),
		ModelName:       v.GetString("model_name"),
		CacheFile:       v.GetString("cache_file"),
		HistorySize:     v.GetInt("history_size"),
		DailyTipHourUTC: v.GetInt("daily_tip_hour_utc"),
		MinCallInterval: time.Duration(v.GetFloat64("min_call_interval_seconds") * float64(time.Second)),
		GenTimeout:      time.Duration(v.GetFloat64("gen_timeout_seconds") * float64(time.Second)),
		MaxTipLength:    v.GetInt("max_tip_length"),
	}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("FITTIP_GEMINI_API_KEY is required when provider is %q", ProviderGemini)
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("FITTIP_OPENAI_API_KEY is required when provider is %q", ProviderOpenAI)
		}
	default:
		return nil, fmt.Errorf("unknown provider %q (want %q or %q)", cfg.Provider, ProviderGemini, ProviderOpenAI)
	}

	if cfg.HistorySize <= 0 {
		return nil, fmt.Errorf("history size must be positive, got %d", cfg.HistorySize)
	}
	if cfg.DailyTipHourUTC < 0 || cfg.DailyTipHourUTC > 23 {
		return nil, fmt.Errorf("daily tip hour must be 0-23, got %d", cfg.DailyTipHourUTC)
	}
	if cfg.MaxTipLength <= 0 {
		return nil, fmt.Errorf("max tip length must be positive, got %d", cfg.MaxTipLength)
	}
	if cfg.MinCallInterval <= 0 {
		return nil, fmt.Errorf("min call interval must be positive, got %s", cfg.MinCallInterval)
	}
	if cfg.GenTimeout <= 0 {
		return nil, fmt.Errorf("generation timeout must be positive, got %s", cfg.GenTimeout)
	}

	return cfg, nil
}
