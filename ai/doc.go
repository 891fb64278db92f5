// Package ai defines the embedding and answer-generation interfaces the
// knowledge base depends on, plus their shared configuration. Concrete
// implementations live in subpackages (openai for OpenAI-compatible APIs,
// mock for tests).
package ai
