package badger

import (
	"fmt"

	"github.com/halcyonlabs/corpus/core"
)

// Key prefixes for different data types. The fingerprint prefix deliberately
// shares the chunk prefix so a single iterator covers both, mirroring how
// FindSimilar filters index keys out.
const (
	chunkPrefix       = "chunk"
	fingerprintPrefix = "chunkfp"
	chunkIDSeq        = "chunkseq"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkPrefix, id))
}

// makeFingerprintKey generates a key for the fingerprint index.
// Format: prefix:fingerprint
func makeFingerprintKey(fp core.Fingerprint) []byte {
	return []byte(fmt.Sprintf("%s:%s", fingerprintPrefix, fp))
}
