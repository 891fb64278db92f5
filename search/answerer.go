package search

import (
	"context"
	"log/slog"

	"github.com/halcyonlabs/corpus/ai"
	"github.com/halcyonlabs/corpus/core"
)

// Answer is a generated answer plus the retrieved chunks it was grounded in.
type Answer struct {
	Text    string
	Sources []*core.SearchResult
}

// Answerer answers questions over the stored knowledge base by retrieving
// the most similar chunks and handing them to a generator as context.
type Answerer struct {
	searcher  *Searcher
	generator ai.Generator
	logger    *slog.Logger
}

// NewAnswerer creates an answerer from a searcher and a generator.
func NewAnswerer(searcher *Searcher, generator ai.Generator) (*Answerer, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	return &Answerer{
		searcher:  searcher,
		generator: generator,
		logger:    slog.Default().With("component", "answerer"),
	}, nil
}

// Ask retrieves context for the question and generates an answer.
// Returns ErrNoResults if nothing in the store matches.
func (a *Answerer) Ask(ctx context.Context, question string) (*Answer, error) {
	results, err := a.searcher.Search(ctx, question)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	passages := make([]string, len(results))
	for i, r := range results {
		passages[i] = r.Chunk.Text
	}

	text, err := a.generator.Answer(ctx, question, passages)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("answered question", "passages", len(passages), "answer_length", len(text))
	return &Answer{Text: text, Sources: results}, nil
}
