package llm

import (
	"os"
	"strconv"
	"strings"
)

// Provider identifies which AI backend serves generation requests.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Config holds all configuration for the LLM subsystem. There is no global
// singleton: the loaded value is passed explicitly to whatever needs it.
type Config struct {
	Provider    Provider `yaml:"provider"`
	OpenAIKey   string   `yaml:"openai_key"`
	OpenAIModel string   `yaml:"openai_model"`
	GeminiKey   string   `yaml:"gemini_key"`
	GeminiModel string   `yaml:"gemini_model"`

	// Endpoint overrides the provider's base URL when set. Used for
	// API-compatible gateways and in tests.
	Endpoint string `yaml:"endpoint"`

	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutMs   int     `yaml:"timeout_ms"`
	MaxRetries  int     `yaml:"max_retries"`
	LogCalls    bool    `yaml:"log_calls"`
}

// DefaultConfig returns a Config with the assistant's defaults: Gemini
// backend, low temperature for deterministic JSON output.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderGemini,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-1.5-flash",
		Temperature: 0.2,
		MaxTokens:   1200,
		TimeoutMs:   30000,
		MaxRetries:  1,
	}
}

// LoadConfig reads LLM configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	return LoadConfigFrom(DefaultConfig())
}

// LoadConfigFrom applies the environment on top of base. Used when a
// config file supplies the base layer.
func LoadConfigFrom(base Config) Config {
	cfg := base

	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.GeminiKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("MAINTASSIST_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("MAINTASSIST_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("MAINTASSIST_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("MAINTASSIST_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// Model returns the model name for the active provider.
func (c Config) Model() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// APIKey returns the credential for the active provider.
func (c Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIKey
	}
	return c.GeminiKey
}
