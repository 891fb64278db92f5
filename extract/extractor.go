package extract

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/halcyonlabs/corpus/core"
)

const (
	// defaultMinContent is the minimum extracted text length (in runes) for a
	// document to be worth keeping. Shorter results are rejected as
	// low_content rather than stored near-empty.
	defaultMinContent = 100

	// maxHeadingLength bounds the first-line title fallback; anything longer
	// is body text, not a heading.
	maxHeadingLength = 120
)

// Strategy extracts text and a title from raw source content. Strategies are
// pure: same input, same output, no retained state. A strategy signals that
// it cannot handle the input by returning an error; the quality gate in
// Extractor decides whether a successful result is good enough.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Extract produces text and an optional declared title from raw content.
	Extract(data []byte, src core.Source) (text, title string, err error)
}

// Extractor turns raw fetched content into extracted documents. It tries an
// ordered list of strategies per source kind and gates each result on a
// minimum content threshold; only when every strategy fails or comes up short
// is the source rejected with low_content. Web extraction quality varies
// wildly by site structure, which is why a single strategy is not enough.
type Extractor struct {
	minContent    int
	webStrategies []Strategy
	pdfStrategies []Strategy
	logger        *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithMinContent sets the minimum extracted text length in runes.
// Default is 100.
func WithMinContent(n int) Option {
	return func(e *Extractor) error {
		if n < 1 {
			return fmt.Errorf("minimum content must be at least 1, got %d", n)
		}
		e.minContent = n
		return nil
	}
}

// WithWebStrategies replaces the ordered strategy list for web sources.
func WithWebStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) error {
		if len(strategies) == 0 {
			return fmt.Errorf("at least one web strategy required")
		}
		e.webStrategies = strategies
		return nil
	}
}

// WithPDFStrategies replaces the ordered strategy list for PDF sources.
func WithPDFStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) error {
		if len(strategies) == 0 {
			return fmt.Errorf("at least one PDF strategy required")
		}
		e.pdfStrategies = strategies
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates an extractor with the default strategy lists:
// readability then tag-strip for web content, page text for PDFs.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		minContent:    defaultMinContent,
		webStrategies: []Strategy{NewReadabilityStrategy(), NewTagStripStrategy()},
		pdfStrategies: []Strategy{NewPDFTextStrategy()},
		logger:        slog.Default().With("component", "extractor"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Extract produces a document from raw content, or a low_content failure when
// no strategy yields enough text.
func (e *Extractor) Extract(data []byte, src core.Source) (*core.Document, error) {
	var strategies []Strategy
	switch src.Kind {
	case core.KindWeb:
		strategies = e.webStrategies
	case core.KindPDF:
		strategies = e.pdfStrategies
	default:
		return nil, core.Fail(core.ReasonUnsupportedType,
			fmt.Errorf("%w: no extraction strategy for kind %q", core.ErrUnsupportedSource, src.Kind))
	}

	for _, strategy := range strategies {
		text, title, err := strategy.Extract(data, src)
		if err != nil {
			e.logger.Debug("extraction strategy failed",
				"strategy", strategy.Name(),
				"source", src.Identifier,
				"err", err)
			continue
		}

		text = strings.TrimSpace(text)
		length := utf8.RuneCountInString(text)
		if length < e.minContent {
			e.logger.Debug("extraction strategy yielded insufficient content",
				"strategy", strategy.Name(),
				"source", src.Identifier,
				"length", length,
				"min", e.minContent)
			continue
		}

		doc := core.NewDocument(text, e.resolveTitle(title, text, src), src)
		e.logger.Info("extracted document",
			"strategy", strategy.Name(),
			"source", src.Identifier,
			"length", doc.Length,
			"title", doc.Title)
		return doc, nil
	}

	e.logger.Warn("all extraction strategies exhausted",
		"source", src.Identifier,
		"min", e.minContent)
	return nil, core.Fail(core.ReasonLowContent,
		fmt.Errorf("%w: %s", core.ErrLowContent, src.Identifier))
}

// resolveTitle applies the title preference chain: declared title, then the
// first heading-like line of the text, then the source identifier.
func (e *Extractor) resolveTitle(declared, text string, src core.Source) string {
	if title := strings.TrimSpace(declared); title != "" {
		return title
	}
	if heading := firstHeadingLine(text); heading != "" {
		return heading
	}
	return src.Identifier
}

// firstHeadingLine returns the first non-empty line if it is short enough to
// plausibly be a heading.
func firstHeadingLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= maxHeadingLength {
			return line
		}
		return ""
	}
	return ""
}
