package dedupe

import (
	"sync"

	"github.com/halcyonlabs/corpus/core"
)

// Registry tracks content fingerprints accepted during one ingestion run.
// The first caller to register a fingerprint wins; later callers with the
// same fingerprint are rejected as duplicates. A Registry is created per run
// and owned by the coordinator, never shared process-wide.
type Registry struct {
	mu   sync.Mutex
	seen map[core.Fingerprint]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		seen: make(map[core.Fingerprint]struct{}),
	}
}

// Seed pre-populates the registry, typically with fingerprints persisted by
// earlier runs so incremental ingestion skips already-stored content.
func (r *Registry) Seed(fingerprints ...core.Fingerprint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fp := range fingerprints {
		r.seen[fp] = struct{}{}
	}
}

// Register records a fingerprint and reports whether it was new. The check
// and insert happen as one step under the lock; two concurrent units
// extracting identical content cannot both win.
func (r *Registry) Register(fp core.Fingerprint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.seen[fp]; dup {
		return false
	}
	r.seen[fp] = struct{}{}
	return true
}

// Len returns the number of registered fingerprints.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
