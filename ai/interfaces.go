package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch, returned
	// in input order. Batch calls are cheaper than repeated EmbedText calls.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces answers to questions grounded in retrieved context
// passages. Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Answer generates an answer to the question using only the provided
	// context passages.
	Answer(ctx context.Context, question string, passages []string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances
// sharing configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the answer generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
