package core

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored chunks.
// It is generated from a database sequence at insertion time.
type ID uint64

// SourceKind classifies a source by how its content is retrieved and parsed.
type SourceKind string

const (
	// KindWeb identifies a remote web page fetched over HTTP.
	KindWeb SourceKind = "web"
	// KindPDF identifies a local PDF file.
	KindPDF SourceKind = "pdf"
)

// Source is a single document source: an identifier (URL or filesystem path)
// plus its inferred kind. A Source is immutable once classified.
type Source struct {
	Identifier string
	Kind       SourceKind
}

// ClassifySource infers the kind of a source identifier.
// URLs (http/https) classify as web, paths ending in .pdf as pdf.
// Anything else returns ErrUnsupportedSource.
func ClassifySource(identifier string) (Source, error) {
	trimmed := strings.TrimSpace(identifier)
	switch {
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return Source{Identifier: trimmed, Kind: KindWeb}, nil
	case strings.HasSuffix(strings.ToLower(trimmed), ".pdf"):
		return Source{Identifier: trimmed, Kind: KindPDF}, nil
	default:
		return Source{Identifier: trimmed}, fmt.Errorf("%w: %q", ErrUnsupportedSource, identifier)
	}
}

// Fingerprint is a deterministic 128-bit content hash of normalized document
// text, hex encoded. Two documents with equal fingerprints are duplicates
// regardless of where they came from.
type Fingerprint string

// FingerprintText computes the fingerprint of document text using BLAKE2b.
// Whitespace runs are collapsed first so formatting-only differences
// fingerprint identically.
func FingerprintText(text string) Fingerprint {
	normalized := strings.Join(strings.Fields(text), " ")
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(normalized))
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// Metadata carries the provenance attached to an accepted document and
// copied onto every chunk derived from it.
type Metadata struct {
	SourceType    SourceKind
	SourceID      string
	ContentHash   Fingerprint
	ProcessedAt   time.Time
	Title         string
	ContentLength int
}

// Document is text extracted from a single source. Extraction produces it
// without metadata; acceptance (after deduplication) attaches Meta, after
// which the document is immutable.
type Document struct {
	Text   string
	Title  string
	Source Source
	Length int // rune count of Text

	// Meta is nil until the document passes deduplication.
	Meta *Metadata
}

// NewDocument creates an extracted document for the given source.
func NewDocument(text, title string, source Source) *Document {
	return &Document{
		Text:   text,
		Title:  title,
		Source: source,
		Length: utf8.RuneCountInString(text),
	}
}

// Accepted reports whether metadata has been attached.
func (d *Document) Accepted() bool {
	return d.Meta != nil
}

// Accept attaches provenance metadata to the document. This is the metadata
// assembly step; it runs once, after the fingerprint wins deduplication.
func (d *Document) Accept(hash Fingerprint, processedAt time.Time) {
	d.Meta = &Metadata{
		SourceType:    d.Source.Kind,
		SourceID:      d.Source.Identifier,
		ContentHash:   hash,
		ProcessedAt:   processedAt,
		Title:         d.Title,
		ContentLength: d.Length,
	}
}

// Chunk is a window of an accepted document's text. Chunks inherit the full
// parent metadata plus their zero-based index within the parent.
type Chunk struct {
	Id     ID
	Text   string
	Index  int
	Vector []float32 // embedding, populated before storage
	Meta   Metadata
}

// SearchResult is a chunk matched by vector similarity search.
type SearchResult struct {
	Chunk *Chunk
	Score float32
}
