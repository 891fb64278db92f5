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

// Package corpus assembles web pages and PDF documents into a searchable,
// question-answerable knowledge base backed by BadgerDB.
package corpus

import (
	"context"
	"log/slog"

	"github.com/halcyonlabs/corpus/ai"
	"github.com/halcyonlabs/corpus/ai/openai"
	"github.com/halcyonlabs/corpus/core"
	"github.com/halcyonlabs/corpus/extract"
	"github.com/halcyonlabs/corpus/fetch"
	"github.com/halcyonlabs/corpus/ingestion"
	"github.com/halcyonlabs/corpus/search"
	"github.com/halcyonlabs/corpus/storage"
	"github.com/halcyonlabs/corpus/storage/badger"
)

// KnowledgeBase is the top-level handle tying storage, AI services, and the
// processing components together.
type KnowledgeBase struct {
	backend   *badger.Backend
	chunkRepo storage.ChunkRepository
	provider  ai.Provider
	fetcher   *fetch.Fetcher
	extractor *extract.Extractor
	logger    *slog.Logger

	pipelineOpts []ingestion.Option
	searchOpts   []search.Option
}

// Option configures a KnowledgeBase.
type Option func(*kbOptions)

type kbOptions struct {
	aiConfig     *ai.Config
	provider     ai.Provider
	inMemory     bool
	fetchOpts    []fetch.Option
	extractOpts  []extract.Option
	pipelineOpts []ingestion.Option
	searchOpts   []search.Option
}

// WithAIConfig sets the configuration used to build the OpenAI-compatible
// provider. Ignored when WithProvider is given.
func WithAIConfig(cfg *ai.Config) Option {
	return func(o *kbOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing one
// from configuration. Used by tests to inject mocks.
func WithProvider(provider ai.Provider) Option {
	return func(o *kbOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the storage backend in memory; the path is ignored.
func WithInMemory() Option {
	return func(o *kbOptions) {
		o.inMemory = true
	}
}

// WithFetchOptions forwards options to the fetcher.
func WithFetchOptions(opts ...fetch.Option) Option {
	return func(o *kbOptions) {
		o.fetchOpts = append(o.fetchOpts, opts...)
	}
}

// WithExtractOptions forwards options to the extractor.
func WithExtractOptions(opts ...extract.Option) Option {
	return func(o *kbOptions) {
		o.extractOpts = append(o.extractOpts, opts...)
	}
}

// WithPipelineOptions forwards options to every pipeline the knowledge base
// creates.
func WithPipelineOptions(opts ...ingestion.Option) Option {
	return func(o *kbOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// WithSearchOptions forwards options to every searcher the knowledge base
// creates.
func WithSearchOptions(opts ...search.Option) Option {
	return func(o *kbOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// Open opens (or creates) a knowledge base at the given path.
func Open(filePath string, opts ...Option) (*KnowledgeBase, error) {
	options := &kbOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		provider.Close()
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	fetcher, err := fetch.NewFetcher(options.fetchOpts...)
	if err != nil {
		chunkRepo.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	extractor, err := extract.NewExtractor(options.extractOpts...)
	if err != nil {
		chunkRepo.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	return &KnowledgeBase{
		backend:      backend,
		chunkRepo:    chunkRepo,
		provider:     provider,
		fetcher:      fetcher,
		extractor:    extractor,
		logger:       slog.Default(),
		pipelineOpts: options.pipelineOpts,
		searchOpts:   options.searchOpts,
	}, nil
}

// Close releases the AI provider, repositories, and storage backend.
func (kb *KnowledgeBase) Close() error {
	if err := kb.provider.Close(); err != nil {
		kb.logger.Error("error closing AI provider", "err", err)
	}

	if err := kb.chunkRepo.Close(); err != nil {
		kb.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	if err := kb.backend.Close(); err != nil {
		kb.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ChunkRepository returns the underlying chunk repository.
func (kb *KnowledgeBase) ChunkRepository() storage.ChunkRepository {
	return kb.chunkRepo
}

// Provider returns the AI provider.
func (kb *KnowledgeBase) Provider() ai.Provider {
	return kb.provider
}

// NewPipeline creates an ingestion pipeline over the knowledge base.
// Options given here are applied after options from Open.
func (kb *KnowledgeBase) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	combined := append(append([]ingestion.Option{}, kb.pipelineOpts...), opts...)
	return ingestion.NewPipeline(kb.fetcher, kb.extractor, kb.chunkRepo, kb.provider.Embedder(), combined...)
}

// NewSearcher creates a searcher over the knowledge base.
func (kb *KnowledgeBase) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	combined := append(append([]search.Option{}, kb.searchOpts...), opts...)
	return search.NewSearcher(kb.chunkRepo, kb.provider.Embedder(), combined...)
}

// NewAnswerer creates a question answerer over the knowledge base.
func (kb *KnowledgeBase) NewAnswerer(opts ...search.Option) (*search.Answerer, error) {
	searcher, err := kb.NewSearcher(opts...)
	if err != nil {
		return nil, err
	}
	return search.NewAnswerer(searcher, kb.provider.Generator())
}

// Ingest processes the given source identifiers with a one-shot pipeline and
// stores the resulting embedded chunks.
func (kb *KnowledgeBase) Ingest(ctx context.Context, identifiers []string, opts ...ingestion.Option) (*ingestion.Summary, error) {
	pipeline, err := kb.NewPipeline(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()
	return pipeline.Ingest(ctx, identifiers)
}

// Search returns the stored chunks most similar to the query.
func (kb *KnowledgeBase) Search(ctx context.Context, query string, opts ...search.Option) ([]*core.SearchResult, error) {
	searcher, err := kb.NewSearcher(opts...)
	if err != nil {
		return nil, err
	}
	return searcher.Search(ctx, query)
}

// Ask answers a question grounded in the stored knowledge base.
func (kb *KnowledgeBase) Ask(ctx context.Context, question string, opts ...search.Option) (*search.Answer, error) {
	answerer, err := kb.NewAnswerer(opts...)
	if err != nil {
		return nil, err
	}
	return answerer.Ask(ctx, question)
}
