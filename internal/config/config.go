// Package config provides configuration loading and validation for the CLI and
// the reference server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LLM providers supported by the generation backend.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Defaults applied by MergeWithDefaults and FromEnv.
const (
	DefaultAPIURL      = "http://localhost:8000"
	DefaultPort        = 8000
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Config represents the configuration that can be loaded from a JSON file or
// the environment. All fields are optional; missing values use defaults or
// must be provided via CLI flags.
type Config struct {
	// Client
	APIURL string `json:"api_url,omitempty"` // Base URL of the generator service

	// Server
	Port        int      `json:"port,omitempty"`         // Listen port for serve
	DatabaseURL string   `json:"database_url,omitempty"` // PostgreSQL connection URL; empty uses the in-memory store
	CORSOrigins []string `json:"cors_origins,omitempty"` // Allowed browser origins

	// LLM
	LLMProvider   string `json:"llm_provider,omitempty"`    // gemini or openai
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"`  // Gemini API key
	GeminiModel   string `json:"gemini_model,omitempty"`    // Gemini model name
	OpenAIAPIKey  string `json:"openai_api_key,omitempty"`  // OpenAI API key
	OpenAIModel   string `json:"openai_model,omitempty"`    // OpenAI model name
	OpenAIBaseURL string `json:"openai_base_url,omitempty"` // OpenAI compatible endpoint

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from environment variables. Unset
// variables leave fields empty so they can be merged with file values.
func FromEnv() Config {
	cfg := Config{
		APIURL:        os.Getenv("API_URL"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LLMProvider:   strings.ToLower(os.Getenv("LLM_PROVIDER")),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Load reads the optional JSON file at path and fills anything it leaves
// empty from the environment and then from built-in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	merged := cfg.MergeWithDefaults(FromEnv())
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:      DefaultAPIURL,
		Port:        DefaultPort,
		CORSOrigins: []string{"http://localhost:3000"},
		LLMProvider: ProviderGemini,
		GeminiModel: DefaultGeminiModel,
		OpenAIModel: DefaultOpenAIModel,
	}
}

// Validate checks that the configuration has valid values.
// Note: API keys are not required here since only the server needs them.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "", ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config error: 'llm_provider' must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLMProvider)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.APIURL != "" && !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("config error: 'api_url' must start with http:// or https://")
	}

	return nil
}

// LLMAPIKey returns the API key of the configured provider.
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// LLMModel returns the model name of the configured provider.
func (c *Config) LLMModel() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.OpenAIModel == "" {
		result.OpenAIModel = defaults.OpenAIModel
	}
	if result.OpenAIBaseURL == "" {
		result.OpenAIBaseURL = defaults.OpenAIBaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Slice fields: use default if empty
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
