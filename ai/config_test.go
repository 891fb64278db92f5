package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, 200, cfg.MaxTokens)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
		assert.Equal(t, 200, cfg.MaxTokens)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))

		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-large"),
			WithLLMModel("gpt-4o"),
		)

		assert.Equal(t, "text-embedding-3-large", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o", cfg.LLMModel)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080/v1"),
			WithToken("none"),
			WithEmbeddingModel("custom-embed"),
			WithLLMModel("custom-llm"),
			WithMaxTokens(500),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
		assert.Equal(t, "none", cfg.Token)
		assert.Equal(t, "custom-embed", cfg.EmbeddingModel)
		assert.Equal(t, "custom-llm", cfg.LLMModel)
		assert.Equal(t, 500, cfg.MaxTokens)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg := NewConfig(WithToken("sk-test"))
		return cfg
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing token", func(t *testing.T) {
		cfg := valid()
		cfg.Token = "   "

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "token")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := valid()
		cfg.EmbeddingModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "embedding model")
	})

	t.Run("missing LLM model", func(t *testing.T) {
		cfg := valid()
		cfg.LLMModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "LLM model")
	})

	t.Run("non-positive max tokens", func(t *testing.T) {
		cfg := valid()
		cfg.MaxTokens = 0

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max tokens")
	})

	t.Run("normalizes whitespace", func(t *testing.T) {
		cfg := valid()
		cfg.Host = "  http://localhost:11434/v1  "
		cfg.Token = " sk-test "

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
		assert.Equal(t, "sk-test", cfg.Token)
	})
}
