package chunk

import (
	"fmt"
	"log/slog"

	"github.com/halcyonlabs/corpus/core"
)

// Splitter windows accepted document text into overlapping fixed-size chunks.
// Windows advance by stride = size - overlap; the final chunk may be shorter
// than size. Chunks carry a copy of the parent document's metadata plus their
// zero-based index, and their order is the order they must be stored in.
type Splitter struct {
	cfg    core.ChunkingConfig
	logger *slog.Logger
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Splitter) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSplitter creates a splitter, validating the configuration up front so an
// invalid overlap/size pair fails before any document is processed.
func NewSplitter(cfg core.ChunkingConfig, opts ...Option) (*Splitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Splitter{
		cfg:    cfg,
		logger: slog.Default().With("component", "splitter"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Split windows the document text into chunks. The document must be accepted
// (metadata attached) since every chunk copies that metadata.
//
// For text of rune length L the number of chunks is
// ceil(max(L-overlap, 1) / stride); text no longer than size yields exactly
// one chunk.
func (s *Splitter) Split(doc *core.Document) ([]*core.Chunk, error) {
	if doc == nil || !doc.Accepted() {
		return nil, fmt.Errorf("%w: cannot chunk", core.ErrNotAccepted)
	}

	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return []*core.Chunk{{Text: "", Index: 0, Meta: *doc.Meta}}, nil
	}

	stride := s.cfg.Stride()
	var chunks []*core.Chunk
	for start := 0; start < len(runes); start += stride {
		end := start + s.cfg.Size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, &core.Chunk{
			Text:  string(runes[start:end]),
			Index: len(chunks),
			Meta:  *doc.Meta,
		})

		if end == len(runes) {
			break
		}
	}

	s.logger.Debug("split document",
		"source", doc.Source.Identifier,
		"length", doc.Length,
		"chunks", len(chunks))
	return chunks, nil
}

// Config returns the splitter's chunking configuration.
func (s *Splitter) Config() core.ChunkingConfig {
	return s.cfg
}
