package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/halcyonlabs/corpus/ai"
	"github.com/halcyonlabs/corpus/core"
	"github.com/halcyonlabs/corpus/storage"
)

const (
	defaultTopK = 3
)

// Searcher retrieves stored chunks by semantic similarity to a query.
type Searcher struct {
	repository    storage.ChunkRepository
	embedder      ai.Embedder
	topK          int
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTopK sets how many results a search returns.
// Default is 3.
func WithTopK(k int) Option {
	return func(s *Searcher) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithMinSimilarity sets the similarity floor for results.
// Default is 0 (no floor).
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) {
		s.minSimilarity = min
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSearcher creates a searcher over the given repository and embedder.
func NewSearcher(repository storage.ChunkRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		repository: repository,
		embedder:   embedder,
		topK:       defaultTopK,
		logger:     slog.Default().With("component", "searcher"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search embeds the query and returns the most similar stored chunks,
// highest score first.
func (s *Searcher) Search(ctx context.Context, query string) ([]*core.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("failed to embed query", "err", err)
		return nil, err
	}

	results, err := s.repository.FindSimilar(ctx, vector, s.minSimilarity, s.topK)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search complete", "query_length", len(query), "results", len(results))
	return results, nil
}
