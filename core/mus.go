package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS format serializers for records persisted to the chunk store. Field
// order is the wire format; changing it breaks existing databases.

// IDMUS serializes IDs as varint-encoded uint64.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// vectorMUS serializes embedding vectors as length-prefixed raw float32s.
var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

// timeMUS serializes timestamps as microseconds since the Unix epoch.
// Sub-microsecond precision is discarded, which is finer than any
// processing timestamp we record.
var timeMUS = timeMUSSer{}

type timeMUSSer struct{}

func (timeMUSSer) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMUSSer) Unmarshal(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMUSSer) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMUSSer) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

// MetadataMUS serializes chunk provenance metadata.
var MetadataMUS = metadataMUS{}

type metadataMUS struct{}

func (metadataMUS) Marshal(m Metadata, bs []byte) int {
	n := ord.String.Marshal(string(m.SourceType), bs)
	n += ord.String.Marshal(m.SourceID, bs[n:])
	n += ord.String.Marshal(string(m.ContentHash), bs[n:])
	n += timeMUS.Marshal(m.ProcessedAt, bs[n:])
	n += ord.String.Marshal(m.Title, bs[n:])
	n += varint.Int.Marshal(m.ContentLength, bs[n:])
	return n
}

func (metadataMUS) Unmarshal(bs []byte) (Metadata, int, error) {
	var m Metadata
	sourceType, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return m, n, err
	}
	m.SourceType = SourceKind(sourceType)

	sourceID, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.SourceID = sourceID

	hash, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.ContentHash = Fingerprint(hash)

	processedAt, n1, err := timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.ProcessedAt = processedAt

	title, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.Title = title

	length, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.ContentLength = length

	return m, n, nil
}

func (metadataMUS) Size(m Metadata) int {
	size := ord.String.Size(string(m.SourceType))
	size += ord.String.Size(m.SourceID)
	size += ord.String.Size(string(m.ContentHash))
	size += timeMUS.Size(m.ProcessedAt)
	size += ord.String.Size(m.Title)
	size += varint.Int.Size(m.ContentLength)
	return size
}

func (metadataMUS) Skip(bs []byte) (int, error) {
	n, err := ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip,
		ord.String.Skip,
		timeMUS.Skip,
		ord.String.Skip,
		varint.Int.Skip,
	} {
		n1, err := skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ChunkMUS serializes stored chunks.
var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) int {
	n := IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.Text, bs[n:])
	n += varint.Int.Marshal(c.Index, bs[n:])
	n += vectorMUS.Marshal(c.Vector, bs[n:])
	n += MetadataMUS.Marshal(c.Meta, bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (Chunk, int, error) {
	var c Chunk
	id, n, err := IDMUS.Unmarshal(bs)
	if err != nil {
		return c, n, err
	}
	c.Id = id

	text, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return c, n, err
	}
	c.Text = text

	index, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return c, n, err
	}
	c.Index = index

	vector, n1, err := vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return c, n, err
	}
	c.Vector = vector

	meta, n1, err := MetadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return c, n, err
	}
	c.Meta = meta

	return c, n, nil
}

func (chunkMUS) Size(c Chunk) int {
	size := IDMUS.Size(c.Id)
	size += ord.String.Size(c.Text)
	size += varint.Int.Size(c.Index)
	size += vectorMUS.Size(c.Vector)
	size += MetadataMUS.Size(c.Meta)
	return size
}

func (chunkMUS) Skip(bs []byte) (int, error) {
	n, err := IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip,
		varint.Int.Skip,
		vectorMUS.Skip,
		MetadataMUS.Skip,
	} {
		n1, err := skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
