package storage

import (
	"testing"
	"time"

	"github.com/halcyonlabs/corpus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalChunk(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		chunk *core.Chunk
	}{
		{
			name: "minimal chunk",
			chunk: &core.Chunk{
				Id:    core.ID(1),
				Text:  "some chunk text",
				Index: 0,
				Meta: core.Metadata{
					SourceType:    core.KindWeb,
					SourceID:      "https://example.com/article",
					ContentHash:   core.FingerprintText("some chunk text"),
					ProcessedAt:   now,
					Title:         "An Article",
					ContentLength: 15,
				},
			},
		},
		{
			name: "chunk with embedding",
			chunk: &core.Chunk{
				Id:     core.ID(7),
				Text:   "chunk with a vector",
				Index:  3,
				Vector: []float32{0.25, -0.5, 1.0, 0.0},
				Meta: core.Metadata{
					SourceType:    core.KindPDF,
					SourceID:      "/data/report.pdf",
					ContentHash:   core.FingerprintText("chunk with a vector"),
					ProcessedAt:   now,
					Title:         "Quarterly Report",
					ContentLength: 5200,
				},
			},
		},
		{
			name: "chunk with unicode text",
			chunk: &core.Chunk{
				Id:     core.ID(9),
				Text:   "héllo wörld 日本語",
				Index:  1,
				Vector: []float32{0.1},
				Meta: core.Metadata{
					SourceType:    core.KindWeb,
					SourceID:      "https://example.com/unicode",
					ContentHash:   core.FingerprintText("héllo"),
					ProcessedAt:   now,
					Title:         "Unïcode",
					ContentLength: 17,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChunk(tt.chunk)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalChunk(data)
			require.NoError(t, err)

			assert.Equal(t, tt.chunk.Id, decoded.Id)
			assert.Equal(t, tt.chunk.Text, decoded.Text)
			assert.Equal(t, tt.chunk.Index, decoded.Index)
			assert.Equal(t, tt.chunk.Meta, decoded.Meta)
			if tt.chunk.Vector == nil {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.chunk.Vector, decoded.Vector)
			}
		})
	}
}

func TestUnmarshalChunk_Truncated(t *testing.T) {
	chunk := &core.Chunk{
		Id:     core.ID(3),
		Text:   "truncation victim",
		Vector: []float32{1, 2, 3},
		Meta: core.Metadata{
			SourceType:  core.KindWeb,
			SourceID:    "https://example.com",
			ProcessedAt: time.Now().UTC(),
		},
	}
	data := MarshalChunk(chunk)

	_, err := UnmarshalChunk(data[:len(data)/2])
	assert.Error(t, err)
}
