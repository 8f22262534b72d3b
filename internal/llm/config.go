// Package llm wraps the generative and embedding model providers behind small interfaces.
package llm

import "time"

// ModelTier represents the capability level of a generation model.
type ModelTier string

const (
	// TierLite is for cheap classification and short drafting.
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for harder reasoning tasks.
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider, the only one implemented.
const ProviderGemini Provider = "gemini"

// DefaultEmbeddingModel produces 768-dimensional vectors.
const DefaultEmbeddingModel = "text-embedding-004"

// Config holds the model selection and call budgets.
type Config struct {
	Provider          Provider
	Models            map[ModelTier]string
	EmbeddingModel    string
	GenerationTimeout time.Duration
	EmbeddingTimeout  time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		EmbeddingModel:    DefaultEmbeddingModel,
		GenerationTimeout: 30 * time.Second,
		EmbeddingTimeout:  15 * time.Second,
		MaxRetries:        1,
		RetryBackoff:      500 * time.Millisecond,
	}
}

// GetModel returns the model name for a tier, falling back to standard then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		next.Models[k] = v
	}
	if model != "" {
		next.Models[tier] = model
	}
	return &next
}
