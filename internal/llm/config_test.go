package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, DefaultEmbeddingModel, config.EmbeddingModel)
	assert.Equal(t, 30*time.Second, config.GenerationTimeout)
	assert.Equal(t, 1, config.MaxRetries)
}

func TestGetModel_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		models map[ModelTier]string
		tier   ModelTier
		want   string
	}{
		{"exact tier", map[ModelTier]string{TierAdvanced: "pro"}, TierAdvanced, "pro"},
		{"falls back to standard", map[ModelTier]string{TierStandard: "flash"}, TierAdvanced, "flash"},
		{"falls back to lite", map[ModelTier]string{TierLite: "lite"}, "unknown", "lite"},
		{"nothing configured", map[ModelTier]string{}, TierLite, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Models: tt.models}
			assert.Equal(t, tt.want, c.GetModel(tt.tier))
		})
	}
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	next := config.WithModel(TierStandard, "custom-flash")

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard), "original unchanged")
	assert.Equal(t, "custom-flash", next.GetModel(TierStandard))
	assert.Equal(t, config.EmbeddingModel, next.EmbeddingModel)

	same := config.WithModel(TierStandard, "")
	assert.Equal(t, "gemini-2.5-flash", same.GetModel(TierStandard), "empty model keeps default")
}
