package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySource(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantKind   SourceKind
		wantErr    bool
	}{
		{"https url", "https://example.com/article", KindWeb, false},
		{"http url", "http://example.com", KindWeb, false},
		{"pdf path", "data/paper.pdf", KindPDF, false},
		{"pdf path uppercase extension", "data/PAPER.PDF", KindPDF, false},
		{"leading whitespace", "  https://example.com", KindWeb, false},
		{"plain text file", "notes.txt", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ClassifySource(tt.identifier)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, src.Kind)
		})
	}
}

func TestFingerprintText(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := FingerprintText("the quick brown fox")
		b := FingerprintText("the quick brown fox")
		assert.Equal(t, a, b)
	})

	t.Run("128 bits hex encoded", func(t *testing.T) {
		fp := FingerprintText("some content")
		assert.Len(t, string(fp), 32)
	})

	t.Run("whitespace normalized", func(t *testing.T) {
		a := FingerprintText("the quick   brown\n\tfox  ")
		b := FingerprintText("the quick brown fox")
		assert.Equal(t, a, b)
	})

	t.Run("different content differs", func(t *testing.T) {
		a := FingerprintText("document one")
		b := FingerprintText("document two")
		assert.NotEqual(t, a, b)
	})
}

func TestDocumentAccept(t *testing.T) {
	src := Source{Identifier: "https://example.com/post", Kind: KindWeb}
	doc := NewDocument("body text of the article", "A Title", src)

	assert.False(t, doc.Accepted())
	assert.Equal(t, 24, doc.Length)

	hash := FingerprintText(doc.Text)
	now := time.Now().UTC()
	doc.Accept(hash, now)

	require.True(t, doc.Accepted())
	assert.Equal(t, KindWeb, doc.Meta.SourceType)
	assert.Equal(t, "https://example.com/post", doc.Meta.SourceID)
	assert.Equal(t, hash, doc.Meta.ContentHash)
	assert.Equal(t, now, doc.Meta.ProcessedAt)
	assert.Equal(t, "A Title", doc.Meta.Title)
	assert.Equal(t, doc.Length, doc.Meta.ContentLength)
}

func TestNewDocumentRuneLength(t *testing.T) {
	doc := NewDocument("héllo wörld", "", Source{Identifier: "x.pdf", Kind: KindPDF})
	assert.Equal(t, 11, doc.Length)
}
