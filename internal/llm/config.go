package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/examportal/internal/config"
)

// Provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config selects one provider and how to call it.
type Config struct {
	Provider string
	Model    string
	APIKey   string

	// BaseURL overrides the OpenAI endpoint for compatible APIs.
	BaseURL string

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
	Retry   RetryConfig
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// keyEnv lists the conventional API key variable for each provider, in the
// order Discover probes them.
var keyEnv = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
}

// DefaultModel returns the friendly default model for a provider.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "claude-haiku"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderGemini:
		return "gemini-flash"
	}
	return ""
}

// DefaultConfig returns defaults for the given provider.
func DefaultConfig(provider string) Config {
	return Config{
		Provider: provider,
		Model:    DefaultModel(provider),
		Timeout:  30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// FromSettings builds a Config from application settings. An explicit
// provider without a key falls back to that provider's conventional key
// variable. With no provider configured, Discover decides. The second
// result is false when no provider is usable.
func FromSettings(s config.LLMConfig) (Config, bool) {
	if !s.Enabled() {
		if s.Provider == "none" {
			return Config{}, false
		}
		return Discover()
	}

	cfg := DefaultConfig(s.Provider)
	if s.Model != "" {
		cfg.Model = s.Model
	}
	if s.Timeout > 0 {
		cfg.Timeout = s.Timeout
	}
	cfg.APIKey = s.APIKey
	if cfg.APIKey == "" {
		for _, k := range keyEnv {
			if k.provider == s.Provider {
				cfg.APIKey = os.Getenv(k.env)
			}
		}
	}
	if cfg.Provider == ProviderOpenAI {
		cfg.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	return cfg, cfg.Validate() == nil
}

// Discover returns a Config for the first provider whose conventional API
// key variable is set, probing Gemini, OpenAI, then Anthropic.
func Discover() (Config, bool) {
	for _, k := range keyEnv {
		if key := os.Getenv(k.env); key != "" {
			cfg := DefaultConfig(k.provider)
			cfg.APIKey = key
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through unchanged.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
