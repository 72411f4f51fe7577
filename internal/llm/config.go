package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// Config selects and configures one provider. An empty Provider disables
// the LLM features.
type Config struct {
	Provider string
	Model    string // alias or full model ID; empty uses the provider default
	APIKey   string
	BaseURL  string // OpenAI-compatible endpoints only
	Timeout  time.Duration
	Retry    RetryConfig
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
	ProviderGemini:     "gemini-flash",
}

// keyEnv lists the API key variables tried for each provider, in order.
var keyEnv = map[string][]string{
	ProviderAnthropic:  {"COSMATH_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	ProviderOpenAI:     {"COSMATH_OPENAI_API_KEY", "OPENAI_API_KEY"},
	ProviderOpenRouter: {"COSMATH_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
	ProviderGemini:     {"COSMATH_GEMINI_API_KEY", "GEMINI_API_KEY"},
}

// DefaultConfig returns a disabled config with the default timeout and
// retry policy.
func DefaultConfig() Config {
	return Config{
		Timeout: 20 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
	}
}

// ConfigFromEnv reads COSMATH_LLM_PROVIDER, COSMATH_LLM_MODEL and
// COSMATH_LLM_BASE_URL. Without an explicit provider it picks the first
// provider whose API key is set (gemini, openai, anthropic, openrouter).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Provider = os.Getenv("COSMATH_LLM_PROVIDER")
	cfg.Model = os.Getenv("COSMATH_LLM_MODEL")
	cfg.BaseURL = os.Getenv("COSMATH_LLM_BASE_URL")

	if cfg.Provider == "" {
		for _, p := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter} {
			if lookupKey(p) != "" {
				cfg.Provider = p
				break
			}
		}
	}
	cfg.APIKey = lookupKey(cfg.Provider)
	return cfg
}

// ConfigWith layers config file settings under the environment. An explicit
// COSMATH_LLM_PROVIDER wins; a file provider beats key discovery.
func ConfigWith(provider, model, baseURL string) Config {
	cfg := ConfigFromEnv()
	if os.Getenv("COSMATH_LLM_PROVIDER") == "" && provider != "" {
		cfg.Provider = provider
		cfg.APIKey = lookupKey(provider)
	}
	if cfg.Model == "" {
		cfg.Model = model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	return cfg
}

func lookupKey(provider string) string {
	for _, name := range keyEnv[provider] {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool { return c.Provider != "" }

// ModelOrDefault returns the configured model or the provider default.
func (c Config) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("%s is required for the %s provider", keyEnv[c.Provider][0], c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
