// Copyright 2025 Halcyon Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is an optional base URL for an OpenAI-compatible API.
	// Empty means the default OpenAI endpoint.
	// Example: "http://localhost:11434/v1" for a local server.
	Host string

	// Token is the API key. Use "none" for local services without auth.
	Token string

	// EmbeddingModel is the model identifier for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// LLMModel is the model identifier for answer generation.
	// Example: "gpt-4o-mini"
	LLMModel string

	// MaxTokens caps the length of generated answers.
	// Default: 200
	MaxTokens int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the base URL for an OpenAI-compatible API.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API key.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithLLMModel sets the answer generation model identifier.
func WithLLMModel(model string) ConfigOption {
	return func(c *Config) {
		c.LLMModel = model
	}
}

// WithMaxTokens sets the generated answer length cap.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// DefaultConfig returns a Config with standard model choices. The token must
// still be supplied (typically from OPENAI_API_KEY) before use.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel: "text-embedding-3-small",
		LLMModel:       "gpt-4o-mini",
		MaxTokens:      200,
	}
}

// NewConfig creates a Config with defaults and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks that the configuration is usable and normalizes it.
func (c *Config) Validate() error {
	c.Host = strings.TrimSpace(c.Host)
	c.Token = strings.TrimSpace(c.Token)
	c.EmbeddingModel = strings.TrimSpace(c.EmbeddingModel)
	c.LLMModel = strings.TrimSpace(c.LLMModel)

	if c.Token == "" {
		return errors.New("API token required (set OPENAI_API_KEY or pass WithToken)")
	}
	if c.EmbeddingModel == "" {
		return errors.New("embedding model required")
	}
	if c.LLMModel == "" {
		return errors.New("LLM model required")
	}
	if c.MaxTokens <= 0 {
		return errors.New("max tokens must be positive")
	}
	return nil
}
