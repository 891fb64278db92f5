package chunk

import (
	"strings"
	"testing"
	"time"

	"github.com/halcyonlabs/corpus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptedDoc(t *testing.T, length int) *core.Document {
	t.Helper()
	text := strings.Repeat("a", length)
	doc := core.NewDocument(text, "Title", core.Source{Identifier: "https://example.com", Kind: core.KindWeb})
	doc.Accept(core.FingerprintText(text), time.Now().UTC())
	return doc
}

func TestSplitChunkCount(t *testing.T) {
	// Expected count is ceil(max(L-overlap, 1) / (size-overlap)).
	tests := []struct {
		name    string
		length  int
		size    int
		overlap int
		want    int
	}{
		{"shorter than size", 3000, 4000, 20, 1},
		{"exactly size", 4000, 4000, 20, 1},
		{"spec scenario 5000/4000/20", 5000, 4000, 20, 2},
		{"two full strides", 7980, 4000, 20, 2},
		{"just over two strides", 7981, 4000, 20, 3},
		{"no overlap even split", 8000, 4000, 0, 2},
		{"no overlap remainder", 8001, 4000, 0, 3},
		{"single char", 1, 10, 3, 1},
		{"heavy overlap", 100, 10, 9, 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSplitter(core.ChunkingConfig{Size: tt.size, Overlap: tt.overlap})
			require.NoError(t, err)

			chunks, err := s.Split(acceptedDoc(t, tt.length))
			require.NoError(t, err)
			assert.Len(t, chunks, tt.want)

			// Indexes are zero-based and sequential.
			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
			}
		})
	}
}

func TestSplitWindowContents(t *testing.T) {
	// Distinct runes so window positions are checkable.
	text := "abcdefghij"
	doc := core.NewDocument(text, "T", core.Source{Identifier: "x.pdf", Kind: core.KindPDF})
	doc.Accept(core.FingerprintText(text), time.Now().UTC())

	s, err := NewSplitter(core.ChunkingConfig{Size: 4, Overlap: 1})
	require.NoError(t, err)

	chunks, err := s.Split(doc)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, "abcd", chunks[0].Text)
	assert.Equal(t, "defg", chunks[1].Text)
	assert.Equal(t, "ghij", chunks[2].Text)
}

func TestSplitMetadataInheritance(t *testing.T) {
	doc := acceptedDoc(t, 5000)

	s, err := NewSplitter(core.ChunkingConfig{Size: 4000, Overlap: 20})
	require.NoError(t, err)

	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	for _, c := range chunks {
		assert.Equal(t, doc.Meta.ContentHash, c.Meta.ContentHash)
		assert.Equal(t, doc.Meta.SourceID, c.Meta.SourceID)
		assert.Equal(t, doc.Meta.Title, c.Meta.Title)
		assert.Equal(t, doc.Meta.ContentLength, c.Meta.ContentLength)
	}
}

func TestSplitMultibyteText(t *testing.T) {
	text := strings.Repeat("é", 10)
	doc := core.NewDocument(text, "T", core.Source{Identifier: "x.pdf", Kind: core.KindPDF})
	doc.Accept(core.FingerprintText(text), time.Now().UTC())

	s, err := NewSplitter(core.ChunkingConfig{Size: 4, Overlap: 0})
	require.NoError(t, err)

	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "éééé", chunks[0].Text)
	assert.Equal(t, "éé", chunks[2].Text)
}

func TestNewSplitterInvalidConfig(t *testing.T) {
	_, err := NewSplitter(core.ChunkingConfig{Size: 50, Overlap: 50})
	assert.ErrorIs(t, err, core.ErrInvalidChunking)
}

func TestSplitRequiresAcceptedDocument(t *testing.T) {
	s, err := NewSplitter(core.DefaultChunkingConfig())
	require.NoError(t, err)

	doc := core.NewDocument("some text", "T", core.Source{Identifier: "x.pdf", Kind: core.KindPDF})
	_, err = s.Split(doc)
	assert.ErrorIs(t, err, core.ErrNotAccepted)
}
