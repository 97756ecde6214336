// Package llm provides centralized LLM configuration and client abstractions.
// Gemini and OpenAI chat models sit behind one Client interface; callers pick
// a model tier, not a model name.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: extraction and structured output
	TierLite ModelTier = "lite"
	// TierStandard is for drafting and refining outreach content
	TierStandard ModelTier = "standard"
	// TierAdvanced is for planning: the first stage of two-stage generation
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (or any OpenAI compatible endpoint)
	ProviderOpenAI Provider = "openai"
)

// DefaultTemperature is used for free-text generation. JSON extraction always
// runs at JSONTemperature.
const (
	DefaultTemperature float32 = 0.7
	JSONTemperature    float32 = 0.1
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	BaseURL     string  // Optional endpoint override (OpenAI only)
	Temperature float32 // Temperature for GenerateContent; zero means DefaultTemperature
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
		Temperature: DefaultTemperature,
	}
}

// ConfigFor returns the default configuration of a provider. A non-empty
// model pins every tier to that model.
func ConfigFor(provider Provider, model string) *Config {
	cfg := DefaultGeminiConfig()
	if provider == ProviderOpenAI {
		cfg = DefaultOpenAIConfig()
	}
	if model != "" {
		for tier := range cfg.Models {
			cfg.Models[tier] = model
		}
	}
	return cfg
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// GetTemperature returns the configured free-text temperature.
func (c *Config) GetTemperature() float32 {
	if c.Temperature == 0 {
		return DefaultTemperature
	}
	return c.Temperature
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string),
		BaseURL:     c.BaseURL,
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
