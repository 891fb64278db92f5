package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/halcyonlabs/corpus/ai"
	"github.com/halcyonlabs/corpus/chunk"
	"github.com/halcyonlabs/corpus/core"
	"github.com/halcyonlabs/corpus/dedupe"
	"github.com/halcyonlabs/corpus/fetch"
	"github.com/halcyonlabs/corpus/storage"
)

const defaultMaxConcurrent = 5

// Fetcher retrieves raw content for a source.
type Fetcher interface {
	Fetch(ctx context.Context, src core.Source) (*fetch.Result, error)
}

// Extractor turns fetched bytes into a document.
type Extractor interface {
	Extract(data []byte, src core.Source) (*core.Document, error)
}

// Failure records why one source produced no stored chunks.
type Failure struct {
	Source core.Source
	Reason core.FailureReason
	Err    error
}

// BatchResult is the outcome of processing one batch of sources.
// Every source appears exactly once, either in Accepted or in Failures.
type BatchResult struct {
	RunID    string
	Accepted []*core.Document
	Failures []Failure
}

// Summary is the outcome of a full ingestion run, through chunking,
// embedding, and storage.
type Summary struct {
	RunID        string
	Sources      int
	Accepted     int
	ChunksStored int
	Failures     []Failure
	Duration     time.Duration
}

// Pipeline orchestrates fetching, extraction, deduplication, chunking,
// embedding, and storage for batches of document sources. Fetch and
// extraction run concurrently on a bounded worker pool; one source failing
// never aborts its siblings.
type Pipeline struct {
	fetcher    Fetcher
	extractor  Extractor
	repository storage.ChunkRepository
	embedder   ai.Embedder
	splitter   *chunk.Splitter
	pool       *ants.Pool

	chunking      core.ChunkingConfig
	seedFromStore bool
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithMaxConcurrent sets the worker pool size for concurrent fetching.
// Default is 5.
func WithMaxConcurrent(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunking sets the chunking configuration.
// Default is core.DefaultChunkingConfig().
func WithChunking(cfg core.ChunkingConfig) Option {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.chunking = cfg
		return nil
	}
}

// WithSeedFromStore controls whether the duplicate registry is seeded with
// fingerprints already persisted in the chunk store. When off, deduplication
// only applies within a batch.
// Default is off.
func WithSeedFromStore(seed bool) Option {
	return func(p *Pipeline) error {
		p.seedFromStore = seed
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	fetcher Fetcher,
	extractor Extractor,
	repository storage.ChunkRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	pool, err := ants.NewPool(defaultMaxConcurrent)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		fetcher:    fetcher,
		extractor:  extractor,
		repository: repository,
		embedder:   embedder,
		pool:       pool,
		chunking:   core.DefaultChunkingConfig(),
		logger:     slog.Default().With("component", "ingestion-pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create splitter after options are applied (so it gets final config)
	splitter, err := chunk.NewSplitter(p.chunking)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.splitter = splitter

	return p, nil
}

// ProcessBatch fetches, extracts, and deduplicates a batch of sources.
// Sources are processed concurrently on the worker pool. The returned result
// holds exactly one entry per source: accepted documents carry metadata,
// failed sources carry a reason.
func (p *Pipeline) ProcessBatch(ctx context.Context, sources []core.Source) (*BatchResult, error) {
	if err := core.ValidateBatch(sources); err != nil {
		return nil, err
	}

	registry := dedupe.NewRegistry()
	if p.seedFromStore {
		fps, err := p.repository.Fingerprints(ctx)
		if err != nil {
			return nil, err
		}
		registry.Seed(fps...)
		p.logger.Debug("seeded duplicate registry", "fingerprints", len(fps))
	}

	result := &BatchResult{RunID: uuid.NewString()}
	p.logger.Info("processing batch", "run_id", result.RunID, "sources", len(sources))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, src := range sources {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			doc, err := p.processSource(ctx, src, registry)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, Failure{
					Source: src,
					Reason: core.ReasonOf(err),
					Err:    err,
				})
				return
			}
			result.Accepted = append(result.Accepted, doc)
		}
		if err := p.pool.Submit(task); err != nil {
			// Pool is released or overloaded; run inline rather than drop the source.
			task()
		}
	}
	wg.Wait()

	p.logger.Info("batch complete",
		"run_id", result.RunID,
		"accepted", len(result.Accepted),
		"failed", len(result.Failures))
	return result, nil
}

// processSource runs one source through fetch, extraction, and deduplication.
func (p *Pipeline) processSource(ctx context.Context, src core.Source, registry *dedupe.Registry) (doc *core.Document, err error) {
	// Parser libraries can panic on malformed input. The worker pool swallows
	// panics, which would leave the source with no recorded outcome, so turn
	// them into failures here.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic while processing source", "source", src.Identifier, "panic", r)
			doc = nil
			err = core.Fail(core.ReasonLowContent, fmt.Errorf("processing %s panicked: %v", src.Identifier, r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := p.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	doc, err = p.extractor.Extract(res.Data, src)
	if err != nil {
		return nil, err
	}

	fp := core.FingerprintText(doc.Text)
	if !registry.Register(fp) {
		p.logger.Info("skipping duplicate document", "source", src.Identifier, "fingerprint", fp)
		return nil, core.Fail(core.ReasonDuplicate, fmt.Errorf("content already ingested: %s", src.Identifier))
	}

	doc.Accept(fp, time.Now().UTC())
	return doc, nil
}

// Ingest classifies the given identifiers, processes them as one batch, and
// stores embedded chunks for every accepted document. Identifiers that fail
// classification are recorded as failures without being fetched.
func (p *Pipeline) Ingest(ctx context.Context, identifiers []string) (*Summary, error) {
	start := time.Now()

	if len(identifiers) == 0 {
		return nil, core.ErrEmptyBatch
	}

	var (
		sources  []core.Source
		failures []Failure
	)
	for _, id := range identifiers {
		src, err := core.ClassifySource(id)
		if err != nil {
			failures = append(failures, Failure{
				Source: src,
				Reason: core.ReasonOf(err),
				Err:    err,
			})
			continue
		}
		sources = append(sources, src)
	}

	summary := &Summary{
		RunID:    uuid.NewString(),
		Sources:  len(identifiers),
		Failures: failures,
	}

	if len(sources) > 0 {
		batch, err := p.ProcessBatch(ctx, sources)
		if err != nil {
			return nil, err
		}
		summary.RunID = batch.RunID
		summary.Failures = append(summary.Failures, batch.Failures...)

		for _, doc := range batch.Accepted {
			stored, err := p.storeDocument(ctx, doc)
			if err != nil {
				// Demote the document to a failure so the per-source
				// accounting stays exact.
				p.logger.Error("failed to store document", "source", doc.Source.Identifier, "err", err)
				summary.Failures = append(summary.Failures, Failure{
					Source: doc.Source,
					Reason: core.ReasonOf(err),
					Err:    err,
				})
				continue
			}
			summary.Accepted++
			summary.ChunksStored += stored
		}
	}

	summary.Duration = time.Since(start)
	p.logger.Info("ingestion complete",
		"run_id", summary.RunID,
		"sources", summary.Sources,
		"accepted", summary.Accepted,
		"chunks_stored", summary.ChunksStored,
		"failed", len(summary.Failures),
		"duration", summary.Duration)
	return summary, nil
}

// storeDocument splits an accepted document, embeds its chunks in one batch
// call, and persists them. Returns the number of chunks stored.
func (p *Pipeline) storeDocument(ctx context.Context, doc *core.Document) (int, error) {
	chunks, err := p.splitter.Split(doc)
	if err != nil {
		return 0, err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Vector = vectors[i]
	}

	if _, err := p.repository.AddChunks(ctx, chunks...); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
